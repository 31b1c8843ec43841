package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"microsvc/internal/domain"
)

// GormUserRepository is the gorm implementation of UserRepository.
// Every call checks a connection out of the pool for its own duration.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a repository over an open gorm handle.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// List returns every user ordered by id.
func (r *GormUserRepository) List(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("gorm: list users: %w", err)
	}
	return users, nil
}

// FindByID looks a user up by primary key. Ids that match no row,
// including zero and negative ones, yield domain.ErrNotFound.
func (r *GormUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByEmail looks a user up by exact email.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("gorm: find user by email: %w", err)
	}
	return &user, nil
}

// SearchByName matches with LIKE, so case sensitivity follows the
// database collation.
func (r *GormUserRepository) SearchByName(ctx context.Context, fragment string) ([]domain.User, error) {
	users := make([]domain.User, 0)
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+fragment+"%").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: search users by name %q: %w", fragment, err)
	}
	return users, nil
}

// Create inserts a new user.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntryError(err) {
			return fmt.Errorf("gorm: create user: %w: %v", domain.ErrDuplicateEmail, err)
		}
		return fmt.Errorf("gorm: create user: %w", err)
	}
	return nil
}

// Update overwrites name and email. Zero rows affected is not reported.
func (r *GormUserRepository) Update(ctx context.Context, id int64, name, email string) error {
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "email": email}).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return fmt.Errorf("gorm: update user %d: %w: %v", id, domain.ErrDuplicateEmail, err)
		}
		return fmt.Errorf("gorm: update user %d: %w", id, err)
	}
	return nil
}

// Delete removes a user. Zero rows affected is not reported.
func (r *GormUserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{}).Error; err != nil {
		return fmt.Errorf("gorm: delete user %d: %w", id, err)
	}
	return nil
}

// isDuplicateEntryError matches the unique-violation messages of the
// supported drivers.
func isDuplicateEntryError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}

var _ UserRepository = (*GormUserRepository)(nil)
