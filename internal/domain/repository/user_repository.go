package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/car-collection/internal/domain/entity"
)

var (
	// ErrEmailTaken is returned by Create when another record already owns the email.
	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("not found")
)

// UserRepository defines the storage operations for user records.
// Create fills in ID and DateCreated on success.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
