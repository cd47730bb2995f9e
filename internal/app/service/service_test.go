package service

import (
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

// fixture wires the services against a fresh seeded store.
type fixture struct {
	db       *store.Store
	userRepo repository.UserRepository
	auth     AuthService
	products ProductService
	cart     CartService
	orders   OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := store.SetupTestStore()
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userLocks := store.NewKeyedMutex()

	return &fixture{
		db:       db,
		userRepo: userRepo,
		auth:     NewAuthService(userRepo, testJWTSecret, 15*time.Minute, time.Hour),
		products: NewProductService(productRepo, categoryRepo, userRepo),
		cart:     NewCartService(cartRepo, productRepo, userLocks),
		orders:   NewOrderService(orderRepo, cartRepo, productRepo, userLocks),
	}
}

// createUser inserts a user directly, skipping the bcrypt round trip.
func (f *fixture) createUser(t *testing.T, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func (f *fixture) createProduct(t *testing.T, sellerID uint, title string, price float64) *model.Product {
	t.Helper()

	category := f.db.Categories.All()[0]
	product, err := f.products.CreateProduct(sellerID, ProductInput{
		Title:      title,
		Price:      price,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	return product
}
