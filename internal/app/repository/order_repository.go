package repository

import (
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

type OrderRepository interface {
	Create(order *model.Order, items []model.OrderItem) error
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindItemsByOrderID(orderID uint) ([]model.OrderItem, error)
}

type orderRepository struct {
	store *store.Store
}

func NewOrderRepository(s *store.Store) OrderRepository {
	return &orderRepository{store: s}
}

// Create stores the order and its line items as one logical operation.
// If durable persistence is ever introduced both writes must move into a
// single transaction.
func (r *orderRepository) Create(order *model.Order, items []model.OrderItem) error {
	logger.Debug("Creating order in store", map[string]interface{}{
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"item_count":   len(items),
	})

	created := r.store.Orders.Insert(func(id uint) model.Order {
		order.ID = id
		order.CreatedAt = time.Now()
		return *order
	})
	*order = created

	for i := range items {
		items[i].OrderID = order.ID
		item := items[i]
		stored := r.store.OrderItems.Insert(func(id uint) model.OrderItem {
			item.ID = id
			return item
		})
		items[i] = stored
	}

	logger.Debug("Order created in store", map[string]interface{}{
		"order_id":   order.ID,
		"item_count": len(items),
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	order, ok := r.store.Orders.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &order, nil
}

// FindByUserID returns the user's orders newest first.
func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	orders := r.store.Orders.Find(func(o model.Order) bool {
		return o.UserID == userID
	})

	// Insertion order is chronological; reverse for newest first.
	for i, j := 0, len(orders)-1; i < j; i, j = i+1, j-1 {
		orders[i], orders[j] = orders[j], orders[i]
	}
	return orders, nil
}

func (r *orderRepository) FindItemsByOrderID(orderID uint) ([]model.OrderItem, error) {
	return r.store.OrderItems.Find(func(item model.OrderItem) bool {
		return item.OrderID == orderID
	}), nil
}
