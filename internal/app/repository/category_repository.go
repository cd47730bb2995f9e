package repository

import (
	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindAll() ([]model.Category, error)
	FindByID(id uint) (*model.Category, error)
	FindBySlug(slug string) (*model.Category, error)
}

type categoryRepository struct {
	store *store.Store
}

func NewCategoryRepository(s *store.Store) CategoryRepository {
	return &categoryRepository{store: s}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in store", map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	})

	created := r.store.Categories.Insert(func(id uint) model.Category {
		category.ID = id
		return *category
	})
	*category = created
	return nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	return r.store.Categories.All(), nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	category, ok := r.store.Categories.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &category, nil
}

// FindBySlug matches case-sensitively, first match in insertion order.
func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	category, ok := r.store.Categories.First(func(c model.Category) bool {
		return c.Slug == slug
	})
	if !ok {
		return nil, store.ErrNotFound
	}
	return &category, nil
}
