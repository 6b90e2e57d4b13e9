// Package wizard runs order-wizard actions against stored sessions.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/addictedsalas/project-printing-sub000/internal/design"
	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	wizardctl "github.com/addictedsalas/project-printing-sub000/internal/wizard"
)

type sessionRepo interface {
	Create(ctx context.Context, s domain.WizardSession) (*domain.WizardSession, error)
	Get(ctx context.Context, id string) (*domain.WizardSession, error)
	Save(ctx context.Context, s domain.WizardSession) (*domain.WizardSession, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type itemValidator interface {
	ValidateItem(item domain.OrderLineItem) error
}

// Options tune the service. Zero values fall back to defaults.
type Options struct {
	TTL            time.Duration
	MaxDesignBytes int
	Policy         wizardctl.Policy
}

type Service struct {
	repo     sessionRepo
	catalog  itemValidator
	dispatch wizardctl.Dispatcher
	opts     Options
	logger   *zap.Logger
	locks    *keyedMutex
	now      func() time.Time
}

func New(repo sessionRepo, catalog itemValidator, dispatch wizardctl.Dispatcher, opts Options, logger *zap.Logger) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		catalog:  catalog,
		dispatch: dispatch,
		opts:     opts,
		logger:   logger,
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// Result is what every wizard action returns: the stored session, whether
// the action did what it was asked and the notices it raised.
type Result struct {
	Session *domain.WizardSession `json:"session"`
	OK      bool                  `json:"ok"`
	Notices []wizardctl.Notice    `json:"notices"`
}

// Start opens a new wizard session.
func (s *Service) Start(ctx context.Context) (*Result, error) {
	sess, err := s.repo.Create(ctx, domain.WizardSession{
		ID:        uuid.NewString(),
		State:     wizardctl.NewState(),
		ExpiresAt: s.now().Add(s.opts.TTL),
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Debug("wizard session started", zap.String("session_id", sess.ID))
	return &Result{Session: sess, OK: true, Notices: []wizardctl.Notice{}}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.WizardSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// UpdateForm replaces the in-progress item after checking it against the
// catalog and the design upload limits.
func (s *Service) UpdateForm(ctx context.Context, id string, item domain.OrderLineItem) (*Result, error) {
	if err := s.validateForm(item); err != nil {
		return nil, err
	}
	return s.apply(ctx, id, func(c *wizardctl.Controller) bool {
		c.UpdateForm(item)
		return true
	})
}

func (s *Service) Next(ctx context.Context, id string) (*Result, error) {
	return s.apply(ctx, id, (*wizardctl.Controller).HandleNext)
}

func (s *Service) Back(ctx context.Context, id string) (*Result, error) {
	return s.apply(ctx, id, (*wizardctl.Controller).HandleBack)
}

func (s *Service) Continue(ctx context.Context, id string) (*Result, error) {
	return s.apply(ctx, id, (*wizardctl.Controller).HandleContinue)
}

func (s *Service) AddMore(ctx context.Context, id string) (*Result, error) {
	return s.apply(ctx, id, (*wizardctl.Controller).HandleAddMore)
}

func (s *Service) Submit(ctx context.Context, id string) (*Result, error) {
	return s.apply(ctx, id, func(c *wizardctl.Controller) bool {
		return c.HandleSubmit(ctx)
	})
}

func (s *Service) SetStep(ctx context.Context, id string, step int) (*Result, error) {
	return s.apply(ctx, id, func(c *wizardctl.Controller) bool {
		c.SetStep(step)
		return true
	})
}

func (s *Service) SetModalOpen(ctx context.Context, id string, open bool) (*Result, error) {
	return s.apply(ctx, id, func(c *wizardctl.Controller) bool {
		c.SetModalOpen(open)
		return true
	})
}

func (s *Service) SetSizeCategory(ctx context.Context, id string, cat domain.SizeCategory) (*Result, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: unknown size category %q", domain.ErrInvalidInput, cat)
	}
	return s.apply(ctx, id, func(c *wizardctl.Controller) bool {
		return c.SetSizeCategory(cat)
	})
}

// apply loads the session, runs action on a controller over its state and
// stores the outcome. Actions on one session run one at a time so an order is
// never dispatched twice.
func (s *Service) apply(ctx context.Context, id string, action func(*wizardctl.Controller) bool) (*Result, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.State.Submitted {
		return nil, domain.ErrSessionSubmitted
	}

	notices := &wizardctl.Collector{Notices: []wizardctl.Notice{}}
	ctl := wizardctl.New(&sess.State,
		wizardctl.WithNotifier(notices),
		wizardctl.WithDispatcher(s.dispatch),
		wizardctl.WithPolicy(s.opts.Policy),
		wizardctl.WithLogger(s.logger.With(zap.String("session_id", id))),
	)
	ok := action(ctl)

	sess.ExpiresAt = s.now().Add(s.opts.TTL)
	saved, err := s.repo.Save(ctx, *sess)
	if err != nil {
		if sess.State.Submitted {
			// The email is out; report the submission even though losing the
			// flag risks a resubmission.
			s.logger.Error("submitted session not stored", zap.String("session_id", id), zap.Error(err))
			return &Result{Session: sess, OK: ok, Notices: notices.Notices}, nil
		}
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &Result{Session: saved, OK: ok, Notices: notices.Notices}, nil
}

func (s *Service) validateForm(item domain.OrderLineItem) error {
	if s.catalog != nil {
		if err := s.catalog.ValidateItem(item); err != nil {
			return err
		}
	}
	for loc, value := range item.Designs {
		if value == "" {
			continue
		}
		if err := design.Validate(value, s.opts.MaxDesignBytes); err != nil {
			return fmt.Errorf("%w: design for %s: %v", domain.ErrInvalidInput, loc.Label(), err)
		}
	}
	return nil
}

// Sweep removes expired sessions.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Sweep(ctx)
			if err != nil {
				s.logger.Warn("session sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				s.logger.Info("expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
