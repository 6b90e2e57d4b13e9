// Package wizard drives the multi-step order form: step gating, the running
// list of saved garments and the final hand-off to the email dispatcher.
package wizard

import (
	"context"

	"go.uber.org/zap"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	"github.com/addictedsalas/project-printing-sub000/internal/order"
)

// Wizard steps, in order.
const (
	StepProductDetails = 1
	StepCustomization  = 2
	StepReview         = 3
	StepContact        = 4

	TotalSteps = StepContact
)

// Dispatcher delivers a finished order and returns the transport message id.
type Dispatcher interface {
	SendOrder(ctx context.Context, o domain.Order) (string, error)
}

// Policy holds the rules that are configuration rather than behaviour.
type Policy struct {
	// RequireCustomDesigns makes named custom print locations need a design
	// before the customization step can be left.
	RequireCustomDesigns bool
}

// Controller owns a wizard state and applies the wizard actions to it.
// It is not safe for concurrent use.
type Controller struct {
	state    *domain.WizardState
	notify   Notifier
	dispatch Dispatcher
	policy   Policy
	logger   *zap.Logger
}

type Option func(*Controller)

func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notify = n
		}
	}
}

func WithDispatcher(d Dispatcher) Option {
	return func(c *Controller) { c.dispatch = d }
}

func WithPolicy(p Policy) Option {
	return func(c *Controller) { c.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewState returns the state of a wizard that was just opened.
func NewState() domain.WizardState {
	return domain.WizardState{
		Step:         StepProductDetails,
		SavedItems:   []domain.OrderLineItem{},
		SizeCategory: domain.SizeCategoryAdult,
		Form:         order.NewLineItem(),
	}
}

// New wraps state. A nil state starts a fresh wizard.
func New(state *domain.WizardState, opts ...Option) *Controller {
	if state == nil {
		s := NewState()
		state = &s
	}
	c := &Controller{
		state:  state,
		notify: discard{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State exposes the controlled state.
func (c *Controller) State() *domain.WizardState {
	return c.state
}

// SetStep jumps to step, clamped to the valid range.
func (c *Controller) SetStep(step int) {
	c.state.Step = clampStep(step)
}

// SetModalOpen shows or hides the continue/add-more decision.
func (c *Controller) SetModalOpen(open bool) {
	c.state.ModalOpen = open
}

// SetSizeCategory switches between adult and youth sizing and mirrors the
// choice into the active form.
func (c *Controller) SetSizeCategory(cat domain.SizeCategory) bool {
	if !cat.Valid() {
		return false
	}
	c.state.SizeCategory = cat
	c.state.Form.SizeCategory = cat
	return true
}

// UpdateForm replaces the in-progress item. The item index and size category
// stay under the controller's ownership.
func (c *Controller) UpdateForm(item domain.OrderLineItem) {
	item.ItemIndex = c.state.Form.ItemIndex
	item.SizeCategory = c.state.SizeCategory
	item.Sizes = order.NormalizeSizes(item.Sizes)
	if item.PrintLocations == nil {
		item.PrintLocations = []domain.PrintLocation{}
	}
	if item.Designs == nil {
		item.Designs = map[domain.PrintLocation]string{}
	}
	c.state.Form = item
}

func (c *Controller) fail(kind Kind, msg string) bool {
	c.notify.Notify(Notice{Level: LevelError, Kind: kind, Message: msg})
	return false
}

func (c *Controller) succeed(kind Kind, msg string) {
	c.notify.Notify(Notice{Level: LevelSuccess, Kind: kind, Message: msg})
}

func clampStep(step int) int {
	if step < StepProductDetails {
		return StepProductDetails
	}
	if step > TotalSteps {
		return TotalSteps
	}
	return step
}
