package repository

import (
	"strings"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindAll() ([]model.Product, error)
	FindByCategoryID(categoryID uint) ([]model.Product, error)
	FindBySellerID(sellerID uint) ([]model.Product, error)
	Search(keyword string) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	store *store.Store
}

func NewProductRepository(s *store.Store) ProductRepository {
	return &productRepository{store: s}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in store", map[string]interface{}{
		"title":     product.Title,
		"seller_id": product.SellerID,
	})

	created := r.store.Products.Insert(func(id uint) model.Product {
		product.ID = id
		product.CreatedAt = time.Now()
		return *product
	})
	*product = created

	logger.Debug("Product created in store", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	product, ok := r.store.Products.Get(id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return &product, nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.store.Products.All(), nil
}

func (r *productRepository) FindByCategoryID(categoryID uint) ([]model.Product, error) {
	return r.store.Products.Find(func(p model.Product) bool {
		return p.CategoryID == categoryID
	}), nil
}

func (r *productRepository) FindBySellerID(sellerID uint) ([]model.Product, error) {
	return r.store.Products.Find(func(p model.Product) bool {
		return p.SellerID == sellerID
	}), nil
}

// Search performs a case-insensitive substring match over title and
// description.
func (r *productRepository) Search(keyword string) ([]model.Product, error) {
	lower := strings.ToLower(keyword)
	return r.store.Products.Find(func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Title), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower)
	}), nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in store", map[string]interface{}{
		"product_id": product.ID,
	})

	updated, ok := r.store.Products.Update(product.ID, func(model.Product) model.Product {
		return *product
	})
	if !ok {
		logger.Warn("Product not found for update", map[string]interface{}{
			"product_id": product.ID,
		})
		return store.ErrNotFound
	}
	*product = updated
	return nil
}

// Delete removes the product only. Cart items and order items referencing
// it are left in place; joined reads resolve the missing product to nil.
func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from store", map[string]interface{}{
		"product_id": id,
	})

	if !r.store.Products.Delete(id) {
		return store.ErrNotFound
	}
	return nil
}
