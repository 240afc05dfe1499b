package admins

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in tests and local development.
type MemoryRepo struct {
	mu     sync.Mutex
	admins map[string]Admin
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{admins: map[string]Admin{}}
}

func (r *MemoryRepo) Create(_ context.Context, admin Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.admins {
		if existing.Username == admin.Username {
			return ErrUsernameTaken
		}
	}
	r.admins[admin.ID] = admin
	return nil
}

func (r *MemoryRepo) GetByID(_ context.Context, adminID string) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[adminID]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return admin, nil
}

func (r *MemoryRepo) GetByUsername(_ context.Context, username string) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return Admin{}, ErrNotFound
}

func (r *MemoryRepo) List(_ context.Context) ([]Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]Admin, 0, len(r.admins))
	for _, admin := range r.admins {
		list = append(list, admin)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *MemoryRepo) Update(_ context.Context, adminID string, update Update) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[adminID]
	if !ok {
		return Admin{}, ErrNotFound
	}
	if update.Username != nil {
		for id, existing := range r.admins {
			if id != adminID && existing.Username == *update.Username {
				return Admin{}, ErrUsernameTaken
			}
		}
		admin.Username = *update.Username
	}
	if update.PasswordHash != nil {
		admin.PasswordHash = *update.PasswordHash
	}
	if update.IsActive != nil {
		admin.IsActive = *update.IsActive
	}
	admin.UpdatedAt = time.Now().UTC()
	r.admins[adminID] = admin
	return admin, nil
}

func (r *MemoryRepo) Delete(_ context.Context, adminID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[adminID]; !ok {
		return ErrNotFound
	}
	delete(r.admins, adminID)
	return nil
}

func (r *MemoryRepo) UpdateLastLogin(_ context.Context, adminID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[adminID]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	admin.LastLoginAt = &now
	admin.UpdatedAt = now
	r.admins[adminID] = admin
	return nil
}
