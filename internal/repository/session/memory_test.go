package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

func newTestSession(id string, expires time.Time) domain.WizardSession {
	return domain.WizardSession{
		ID:        id,
		ExpiresAt: expires,
		State: domain.WizardState{
			Step:         1,
			SizeCategory: domain.SizeCategoryAdult,
			Form: domain.OrderLineItem{
				Sizes: domain.Sizes{domain.SizeSmall: {{Quantity: "3", Color: "white"}}},
			},
		},
	}
}

func TestMemory_CreateGetSave(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	created, err := repo.Create(ctx, newTestSession("s1", time.Now().Add(time.Hour)))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Version != 1 {
		t.Fatalf("expected version 1, got %d", created.Version)
	}
	if _, err := repo.Create(ctx, newTestSession("s1", time.Now().Add(time.Hour))); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on duplicate id, got %v", err)
	}

	fetched, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	fetched.State.Step = 2
	saved, err := repo.Save(ctx, *fetched)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Version != 2 || saved.State.Step != 2 {
		t.Fatalf("unexpected saved session %+v", saved)
	}

	// fetched still carries version 1.
	if _, err := repo.Save(ctx, *fetched); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	if _, err := repo.Create(ctx, newTestSession("s1", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	a, _ := repo.Get(ctx, "s1")
	a.State.Form.Sizes[domain.SizeSmall][0].Quantity = "99"

	b, _ := repo.Get(ctx, "s1")
	if got := b.State.Form.Sizes[domain.SizeSmall][0].Quantity; got != "3" {
		t.Fatalf("store leaked caller mutation, quantity %q", got)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory().(*memoryRepo)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	if _, err := repo.Create(ctx, newTestSession("old", now.Add(time.Minute))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, newTestSession("new", now.Add(time.Hour))); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := repo.Get(ctx, "old"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}

	if _, err := repo.Create(ctx, newTestSession("older", now.Add(-time.Second))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	removed, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := repo.Get(ctx, "new"); err != nil {
		t.Fatalf("live session removed: %v", err)
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	if _, err := repo.Create(ctx, newTestSession("s1", time.Now().Add(time.Hour))); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
