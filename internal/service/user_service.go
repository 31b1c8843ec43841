package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"microsvc/internal/domain"
	"microsvc/internal/repository"
)

// UserService implements the user management operations.
type UserService struct {
	repo repository.UserRepository
	cost int
}

// NewUserService creates a UserService. A cost of 0 uses bcrypt.DefaultCost.
func NewUserService(repo repository.UserRepository, cost int) *UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{repo: repo, cost: cost}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Search(ctx context.Context, name string) ([]domain.User, error) {
	return s.repo.SearchByName(ctx, name)
}

// Create hashes the password and inserts the user. Inputs are expected
// to be validated by the caller.
func (s *UserService) Create(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithField("user_id", user.ID).Info("user created")
	return user, nil
}

// Update changes name and email without checking that the user exists.
func (s *UserService) Update(ctx context.Context, id int64, name, email string) error {
	return s.repo.Update(ctx, id, name, email)
}

// Delete removes the user without checking that it exists.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logrus.WithField("user_id", id).Info("user deleted")
	return nil
}

// Login checks the password for the account with email. Unknown email and
// wrong password both yield domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logrus.Warn("login failed: unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	logCtx := logrus.WithField("user_id", user.ID)

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logCtx.Warn("login failed: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	logCtx.Info("login succeeded")
	return user, nil
}
