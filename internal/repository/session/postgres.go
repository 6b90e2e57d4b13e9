package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const sessionColumns = `id::text, state, version, created_at, updated_at, expires_at`

func (r *postgresRepo) Create(ctx context.Context, s domain.WizardSession) (*domain.WizardSession, error) {
	raw, err := json.Marshal(s.State)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	const q = `
INSERT INTO wizard_sessions (id, state, version, expires_at)
VALUES ($1, $2, 1, $3)
RETURNING ` + sessionColumns
	created, err := scanSession(r.pool.QueryRow(ctx, q, s.ID, raw, s.ExpiresAt))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) Get(ctx context.Context, id string) (*domain.WizardSession, error) {
	const q = `
SELECT ` + sessionColumns + `
FROM wizard_sessions
WHERE id = $1 AND expires_at > now()
`
	s, err := scanSession(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) Save(ctx context.Context, s domain.WizardSession) (*domain.WizardSession, error) {
	raw, err := json.Marshal(s.State)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	const q = `
UPDATE wizard_sessions
SET state = $1,
    version = version + 1,
    updated_at = now(),
    expires_at = $2
WHERE id = $3 AND version = $4 AND expires_at > now()
RETURNING ` + sessionColumns
	saved, err := scanSession(r.pool.QueryRow(ctx, q, raw, s.ExpiresAt, s.ID, s.Version))
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	// Nothing matched: tell a stale version apart from a missing session.
	if _, getErr := r.Get(ctx, s.ID); getErr != nil {
		return nil, getErr
	}
	return nil, domain.ErrConflict
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wizard_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM wizard_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*domain.WizardSession, error) {
	var (
		s   domain.WizardSession
		raw []byte
	)
	if err := row.Scan(&s.ID, &raw, &s.Version, &s.CreatedAt, &s.UpdatedAt, &s.ExpiresAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.State); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &s, nil
}
