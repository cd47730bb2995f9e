package store

import (
	"errors"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store holds one table per entity kind. All data lives for the process
// lifetime only; there is no durability across restarts.
type Store struct {
	Users      *Table[model.User]
	Categories *Table[model.Category]
	Products   *Table[model.Product]
	CartItems  *Table[model.CartItem]
	Orders     *Table[model.Order]
	OrderItems *Table[model.OrderItem]
}

// Open creates an empty store.
func Open() *Store {
	logger.Debug("Opening in-memory store")
	return &Store{
		Users:      NewTable[model.User](),
		Categories: NewTable[model.Category](),
		Products:   NewTable[model.Product](),
		CartItems:  NewTable[model.CartItem](),
		Orders:     NewTable[model.Order](),
		OrderItems: NewTable[model.OrderItem](),
	}
}

// Seed inserts the fixed default category set. It is a no-op when
// categories already exist.
func (s *Store) Seed() error {
	if s.Categories.Len() > 0 {
		logger.Debug("Skipping seed: categories already present", map[string]interface{}{
			"count": s.Categories.Len(),
		})
		return nil
	}

	defaults := []model.Category{
		{Name: "Home & Living", Slug: "home-living"},
		{Name: "Personal Care", Slug: "personal-care"},
		{Name: "Fashion", Slug: "fashion"},
		{Name: "Food & Kitchen", Slug: "food-kitchen"},
	}

	for _, c := range defaults {
		category := c
		s.Categories.Insert(func(id uint) model.Category {
			category.ID = id
			return category
		})
	}

	logger.Info("Seeded default categories", map[string]interface{}{
		"count": len(defaults),
	})
	return nil
}
