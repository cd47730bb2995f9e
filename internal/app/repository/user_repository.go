package repository

import (
	"strings"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
}

type userRepository struct {
	store *store.Store
}

func NewUserRepository(s *store.Store) UserRepository {
	return &userRepository{store: s}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in store", map[string]interface{}{
		"username": user.Username,
		"email":    user.Email,
	})

	created := r.store.Users.Insert(func(id uint) model.User {
		user.ID = id
		user.CreatedAt = time.Now()
		return *user
	})
	*user = created

	logger.Debug("User created in store", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	user, ok := r.store.Users.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

// FindByUsername matches case-insensitively and resolves the first match
// in insertion order.
func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	user, ok := r.store.Users.First(func(u model.User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

// FindByEmail matches case-insensitively and resolves the first match in
// insertion order.
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	user, ok := r.store.Users.First(func(u model.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in store", map[string]interface{}{
		"user_id": user.ID,
	})

	updated, ok := r.store.Users.Update(user.ID, func(model.User) model.User {
		return *user
	})
	if !ok {
		logger.Warn("User not found for update", map[string]interface{}{
			"user_id": user.ID,
		})
		return store.ErrNotFound
	}
	*user = updated
	return nil
}
