// Package memory is an in-process user store with the same uniqueness rule as
// the users table. Tests use it in place of PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/car-collection/internal/domain/entity"
	"github.com/oksasatya/car-collection/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]entity.User
	byEmail map[string]int64

	// Err, when set, is returned by every call to simulate an unavailable store.
	Err error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[int64]entity.User),
		byEmail: make(map[string]int64),
	}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	// the UNIQUE constraint compares bytes, so no case folding here
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	r.nextID++
	u.ID = r.nextID
	u.DateCreated = time.Now().UTC()
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}

// Count returns how many records have exactly this email.
func (r *UserRepository) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, u := range r.byID {
		if u.Email == email {
			n++
		}
	}
	return n
}

// Len returns the number of stored records.
func (r *UserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

var _ repository.UserRepository = (*UserRepository)(nil)
