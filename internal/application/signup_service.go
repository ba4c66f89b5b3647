package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/car-collection/internal/domain/entity"
	repo "github.com/oksasatya/car-collection/internal/domain/repository"
)

// ErrEmailTaken is returned by Signup when the email already has an account.
var ErrEmailTaken = repo.ErrEmailTaken

// SignupInput carries already validated form values.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type Service struct {
	Repo      repo.UserRepository
	Passwords PasswordEncoder
	Logger    *logrus.Logger
}

func NewService(repo repo.UserRepository, passwords PasswordEncoder, logger *logrus.Logger) *Service {
	if passwords == nil {
		passwords = PlainPasswords{}
	}
	return &Service{Repo: repo, Passwords: passwords, Logger: logger}
}

// Signup stores a new account. Token stays unset and DateCreated comes from the store.
// A duplicate email yields ErrEmailTaken; any other store error is returned wrapped.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	signupStats.Add(statAttempts, 1)

	password, err := s.Passwords.Encode(in.Password)
	if err != nil {
		signupStats.Add(statFailures, 1)
		return nil, fmt.Errorf("encode password: %w", err)
	}
	u := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  password,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			signupStats.Add(statConflicts, 1)
			if s.Logger != nil {
				s.Logger.WithField("email", in.Email).Info("signup rejected: email already registered")
			}
			return nil, ErrEmailTaken
		}
		signupStats.Add(statFailures, 1)
		return nil, fmt.Errorf("create user: %w", err)
	}
	signupStats.Add(statCreated, 1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user signed up")
	}
	return u, nil
}
