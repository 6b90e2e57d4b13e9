package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

type memoryEntry struct {
	state     []byte
	version   int
	createdAt time.Time
	updatedAt time.Time
	expiresAt time.Time
}

// memoryRepo keeps sessions in process. States are stored encoded so callers
// never share maps or slices with the store.
type memoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemory() Repository {
	return &memoryRepo{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (r *memoryRepo) Create(_ context.Context, s domain.WizardSession) (*domain.WizardSession, error) {
	raw, err := json.Marshal(s.State)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	now := r.now().UTC()
	entry := memoryEntry{
		state:     raw,
		version:   1,
		createdAt: now,
		updatedAt: now,
		expiresAt: s.ExpiresAt,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return nil, domain.ErrConflict
	}
	r.sessions[s.ID] = entry
	return entry.session(s.ID)
}

func (r *memoryRepo) Get(_ context.Context, id string) (*domain.WizardSession, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	if r.now().After(entry.expiresAt) {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	return entry.session(id)
}

func (r *memoryRepo) Save(_ context.Context, s domain.WizardSession) (*domain.WizardSession, error) {
	raw, err := json.Marshal(s.State)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[s.ID]
	if !ok || r.now().After(entry.expiresAt) {
		return nil, domain.ErrNotFound
	}
	if entry.version != s.Version {
		return nil, domain.ErrConflict
	}
	entry.state = raw
	entry.version++
	entry.updatedAt = r.now().UTC()
	entry.expiresAt = s.ExpiresAt
	r.sessions[s.ID] = entry
	return entry.session(s.ID)
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *memoryRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, entry := range r.sessions {
		if now.After(entry.expiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (e memoryEntry) session(id string) (*domain.WizardSession, error) {
	s := &domain.WizardSession{
		ID:        id,
		Version:   e.version,
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
		ExpiresAt: e.expiresAt,
	}
	if err := json.Unmarshal(e.state, &s.State); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return s, nil
}
