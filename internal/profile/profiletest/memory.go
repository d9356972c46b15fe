// Package profiletest provides an in-memory profile.Repository for tests.
package profiletest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/imadgeboyega/soulbond-backend/internal/profile"
)

// Repository keeps user records in memory
type Repository struct {
	mu      sync.Mutex
	users   map[string]*profile.User
	order   []string
	matched map[string]map[string]bool

	// Err, when set, is returned by every method
	Err error
}

// NewRepository creates a repository seeded with users, in the given order
func NewRepository(users ...*profile.User) *Repository {
	r := &Repository{
		users:   make(map[string]*profile.User),
		matched: make(map[string]map[string]bool),
	}
	for _, u := range users {
		r.Put(u)
	}
	return r
}

// Put stores a copy of u
func (r *Repository) Put(u *profile.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		r.order = append(r.order, u.ID)
	}
	cp := *u
	r.users[u.ID] = &cp
}

// MarkMatched hides target from userID's candidate list
func (r *Repository) MarkMatched(userID, targetID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.matched[userID] == nil {
		r.matched[userID] = make(map[string]bool)
	}
	r.matched[userID][targetID] = true
}

func (r *Repository) GetUser(_ context.Context, userID string) (*profile.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, profile.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *Repository) ListCandidates(_ context.Context, excludeID string, limit int) ([]*profile.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*profile.User
	for _, id := range r.order {
		if id == excludeID || r.matched[excludeID][id] {
			continue
		}
		if len(out) == limit {
			break
		}
		cp := *r.users[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Repository) ListActiveUserIDs(_ context.Context, days int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	var ids []string
	for _, id := range r.order {
		if r.users[id].LastActive.After(cutoff) {
			ids = append(ids, id)
		}
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return r.users[ids[i]].LastActive.After(r.users[ids[j]].LastActive)
	})
	return ids, nil
}

func (r *Repository) SaveAssessment(_ context.Context, update *profile.AssessmentUpdate) (*profile.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	now := time.Now()
	u, ok := r.users[update.UserID]
	if !ok {
		u = &profile.User{ID: update.UserID, Name: profile.DefaultName, CreatedAt: now}
		r.users[update.UserID] = u
		r.order = append(r.order, update.UserID)
	}
	u.Traumas = update.Traumas
	u.Positive = update.Positive
	u.Interests = update.Interests
	u.Intent = update.Intent
	u.BehavioralProfile = update.BehavioralProfile
	u.LastActive = now
	u.UpdatedAt = now
	cp := *u
	return &cp, nil
}

func (r *Repository) TouchLastActive(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if u, ok := r.users[userID]; ok {
		u.LastActive = time.Now()
	}
	return nil
}

var _ profile.Repository = (*Repository)(nil)
