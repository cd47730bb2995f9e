package repository

import (
	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

type CartRepository interface {
	Create(cartItem *model.CartItem) error
	FindByID(id uint) (*model.CartItem, error)
	FindByUserID(userID uint) ([]model.CartItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.CartItem, error)
	Update(cartItem *model.CartItem) error
	Delete(id uint) (bool, error)
	DeleteByUserID(userID uint) (int, error)
}

type cartRepository struct {
	store *store.Store
}

func NewCartRepository(s *store.Store) CartRepository {
	return &cartRepository{store: s}
}

func (r *cartRepository) Create(cartItem *model.CartItem) error {
	logger.Debug("Creating cart item in store", map[string]interface{}{
		"user_id":    cartItem.UserID,
		"product_id": cartItem.ProductID,
		"quantity":   cartItem.Quantity,
	})

	created := r.store.CartItems.Insert(func(id uint) model.CartItem {
		cartItem.ID = id
		return *cartItem
	})
	*cartItem = created

	logger.Debug("Cart item created in store", map[string]interface{}{
		"cart_item_id": cartItem.ID,
	})
	return nil
}

func (r *cartRepository) FindByID(id uint) (*model.CartItem, error) {
	cartItem, ok := r.store.CartItems.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &cartItem, nil
}

func (r *cartRepository) FindByUserID(userID uint) ([]model.CartItem, error) {
	return r.store.CartItems.Find(func(item model.CartItem) bool {
		return item.UserID == userID
	}), nil
}

func (r *cartRepository) FindByUserAndProduct(userID, productID uint) (*model.CartItem, error) {
	cartItem, ok := r.store.CartItems.First(func(item model.CartItem) bool {
		return item.UserID == userID && item.ProductID == productID
	})
	if !ok {
		return nil, store.ErrNotFound
	}
	return &cartItem, nil
}

func (r *cartRepository) Update(cartItem *model.CartItem) error {
	logger.Debug("Updating cart item in store", map[string]interface{}{
		"cart_item_id": cartItem.ID,
		"quantity":     cartItem.Quantity,
	})

	updated, ok := r.store.CartItems.Update(cartItem.ID, func(model.CartItem) model.CartItem {
		return *cartItem
	})
	if !ok {
		logger.Warn("Cart item not found for update", map[string]interface{}{
			"cart_item_id": cartItem.ID,
		})
		return store.ErrNotFound
	}
	*cartItem = updated
	return nil
}

// Delete reports whether a row was actually removed so callers can keep
// removal idempotent.
func (r *cartRepository) Delete(id uint) (bool, error) {
	logger.Debug("Deleting cart item from store", map[string]interface{}{
		"cart_item_id": id,
	})

	return r.store.CartItems.Delete(id), nil
}

func (r *cartRepository) DeleteByUserID(userID uint) (int, error) {
	items := r.store.CartItems.Find(func(item model.CartItem) bool {
		return item.UserID == userID
	})
	for _, item := range items {
		r.store.CartItems.Delete(item.ID)
	}

	logger.Debug("Cart items deleted by user ID from store", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return len(items), nil
}
