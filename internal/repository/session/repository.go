// Package session stores wizard sessions between requests.
package session

import (
	"context"
	"time"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

// Repository persists wizard sessions. Save only succeeds when the caller
// holds the current version and returns the session with the bumped version;
// otherwise it fails with domain.ErrConflict. Expired sessions are reported as
// domain.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, s domain.WizardSession) (*domain.WizardSession, error)
	Get(ctx context.Context, id string) (*domain.WizardSession, error)
	Save(ctx context.Context, s domain.WizardSession) (*domain.WizardSession, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
