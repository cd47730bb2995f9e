package service

import (
	"errors"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrProductAccessDenied = errors.New("product access denied")
)

// ProductListOptions narrows the product listing. CategorySlug wins over
// Search when both are set, matching the browse-first client behavior.
type ProductListOptions struct {
	CategorySlug string
	Search       string
}

// ProductPatch carries the updatable product fields. Absent fields are
// left untouched; the merge is all-or-nothing.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	ImageURL    *string
	CategoryID  *uint
}

type ProductInput struct {
	Title       string
	Description string
	Price       float64
	ImageURL    string
	CategoryID  uint
}

type ProductService interface {
	GetCategories() ([]model.Category, error)
	ListProducts(opts ProductListOptions) ([]model.ProductWithCategory, error)
	GetProductDetail(id uint) (*model.ProductDetail, error)
	GetSellerProducts(sellerID uint) ([]model.ProductWithCategory, error)
	CreateProduct(sellerID uint, input ProductInput) (*model.Product, error)
	UpdateProduct(sellerID, id uint, patch ProductPatch) (*model.Product, error)
	DeleteProduct(sellerID, id uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

func (s *productService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.ProductWithCategory, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category": opts.CategorySlug,
		"search":   opts.Search,
	})

	var (
		products []model.Product
		err      error
	)

	switch {
	case opts.CategorySlug != "":
		category, cerr := s.categoryRepo.FindBySlug(opts.CategorySlug)
		if cerr != nil {
			if errors.Is(cerr, store.ErrNotFound) {
				// Unknown category slug yields an empty listing,
				// not an error.
				return []model.ProductWithCategory{}, nil
			}
			return nil, cerr
		}
		products, err = s.productRepo.FindByCategoryID(category.ID)
	case opts.Search != "":
		products, err = s.productRepo.Search(opts.Search)
	default:
		products, err = s.productRepo.FindAll()
	}
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	enriched := s.withCategories(products)

	logger.Info("Products listed", map[string]interface{}{
		"count": len(enriched),
	})
	return enriched, nil
}

func (s *productService) GetProductDetail(id uint) (*model.ProductDetail, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	detail := &model.ProductDetail{Product: *product}
	if category, err := s.categoryRepo.FindByID(product.CategoryID); err == nil {
		detail.Category = category
	}
	if seller, err := s.userRepo.FindByID(product.SellerID); err == nil {
		detail.Seller = seller.Summary()
	}
	return detail, nil
}

func (s *productService) GetSellerProducts(sellerID uint) ([]model.ProductWithCategory, error) {
	products, err := s.productRepo.FindBySellerID(sellerID)
	if err != nil {
		logger.Error("Failed to fetch seller products", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return nil, err
	}
	return s.withCategories(products), nil
}

func (s *productService) CreateProduct(sellerID uint, input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"seller_id": sellerID,
		"title":     input.Title,
	})

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("Cannot create product: category not found", map[string]interface{}{
				"category_id": input.CategoryID,
			})
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &model.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		SellerID:    sellerID,
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"seller_id": sellerID,
		})
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"seller_id":  sellerID,
	})
	return product, nil
}

func (s *productService) UpdateProduct(sellerID, id uint, patch ProductPatch) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
		"seller_id":  sellerID,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if product.SellerID != sellerID {
		logger.Warn("Product update denied: ownership mismatch", map[string]interface{}{
			"product_id": id,
			"seller_id":  sellerID,
			"owner_id":   product.SellerID,
		})
		return nil, ErrProductAccessDenied
	}

	if patch.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*patch.CategoryID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = *patch.CategoryID
	}
	if patch.Title != nil {
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		product.ImageURL = *patch.ImageURL
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return product, nil
}

// DeleteProduct removes the listing. Existing cart items and order items
// keep their product references; joined reads surface the gap as a nil
// product.
func (s *productService) DeleteProduct(sellerID, id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
		"seller_id":  sellerID,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if product.SellerID != sellerID {
		logger.Warn("Product delete denied: ownership mismatch", map[string]interface{}{
			"product_id": id,
			"seller_id":  sellerID,
			"owner_id":   product.SellerID,
		})
		return ErrProductAccessDenied
	}

	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) withCategories(products []model.Product) []model.ProductWithCategory {
	enriched := make([]model.ProductWithCategory, 0, len(products))
	for _, p := range products {
		item := model.ProductWithCategory{Product: p}
		if category, err := s.categoryRepo.FindByID(p.CategoryID); err == nil {
			item.Category = category
		}
		enriched = append(enriched, item)
	}
	return enriched
}
