package service

import (
	"errors"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

type OrderService interface {
	PlaceOrder(userID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.OrderWithItems, error)
	GetOrderByID(userID, orderID uint) (*model.OrderWithItems, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userLocks   *store.KeyedMutex
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userLocks *store.KeyedMutex,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userLocks:   userLocks,
	}
}

// PlaceOrder converts the user's cart into an order. The whole sequence
// (read cart, compute total, write order and items, clear cart) runs under
// the per-user lock so no cart mutation or second order can interleave.
//
// Cart lines whose product has been deleted are excluded from both the
// total and the created order items. If every line is dangling the order
// fails the same way as an empty cart.
func (s *orderService) PlaceOrder(userID uint) (*model.Order, error) {
	logger.Info("Placing order from cart", map[string]interface{}{
		"user_id": userID,
	})

	s.userLocks.Lock(userID)
	defer s.userLocks.Unlock(userID)

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if len(cartItems) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	var (
		totalAmount float64
		orderItems  []model.OrderItem
	)

	for _, item := range cartItems {
		product, err := s.productRepo.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				logger.Warn("Skipping cart line: product deleted", map[string]interface{}{
					"user_id":    userID,
					"product_id": item.ProductID,
				})
				continue
			}
			logger.Error("Failed to fetch product for order", err, map[string]interface{}{
				"product_id": item.ProductID,
			})
			return nil, err
		}

		totalAmount += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price, // snapshot, immune to later edits
		})
	}

	if len(orderItems) == 0 {
		logger.Warn("Cannot place order: every cart line is dangling", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	order := &model.Order{
		UserID:      userID,
		TotalAmount: totalAmount,
		Status:      model.OrderStatusCompleted,
	}

	if err := s.orderRepo.Create(order, orderItems); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	if _, err := s.cartRepo.DeleteByUserID(userID); err != nil {
		// The order is already recorded; a failed clear would leave the
		// cart behind. With durable persistence this pair must become a
		// single transaction.
		logger.Error("Failed to clear cart after order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"user_id":      userID,
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
		"item_count":   len(orderItems),
	})
	return order, nil
}

// GetUserOrders returns the user's orders newest first, each joined with
// its items and their live product records.
func (s *orderService) GetUserOrders(userID uint) ([]model.OrderWithItems, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})

	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	result := make([]model.OrderWithItems, 0, len(orders))
	for _, order := range orders {
		withItems, err := s.attachItems(order)
		if err != nil {
			return nil, err
		}
		result = append(result, *withItems)
	}

	logger.Info("User orders fetched", map[string]interface{}{
		"user_id": userID,
		"count":   len(result),
	})
	return result, nil
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.OrderWithItems, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	return s.attachItems(*order)
}

func (s *orderService) attachItems(order model.Order) (*model.OrderWithItems, error) {
	items, err := s.orderRepo.FindItemsByOrderID(order.ID)
	if err != nil {
		logger.Error("Failed to fetch order items", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return nil, err
	}

	details := make([]model.OrderItemDetail, 0, len(items))
	for _, item := range items {
		detail := model.OrderItemDetail{OrderItem: item}
		if product, err := s.productRepo.FindByID(item.ProductID); err == nil {
			detail.Product = product
		}
		details = append(details, detail)
	}

	return &model.OrderWithItems{Order: order, Items: details}, nil
}
