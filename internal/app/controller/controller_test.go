package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/app/model"
	"github.com/ecofinds/ecofinds-backend/internal/app/repository"
	"github.com/ecofinds/ecofinds-backend/internal/app/service"
	"github.com/ecofinds/ecofinds-backend/internal/middleware"
	"github.com/ecofinds/ecofinds-backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testEnv wires controllers against a fresh seeded store.
type testEnv struct {
	db       *store.Store
	userRepo repository.UserRepository
	auth     *AuthController
	products *ProductController
	cart     *CartController
	orders   *OrderController

	cartService    service.CartService
	productService service.ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := store.SetupTestStore()
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userLocks := store.NewKeyedMutex()

	authService := service.NewAuthService(userRepo, "test-secret-key", 15*time.Minute, time.Hour)
	productService := service.NewProductService(productRepo, categoryRepo, userRepo)
	cartService := service.NewCartService(cartRepo, productRepo, userLocks)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, userLocks)

	return &testEnv{
		db:             db,
		userRepo:       userRepo,
		auth:           NewAuthController(authService),
		products:       NewProductController(productService),
		cart:           NewCartController(cartService),
		orders:         NewOrderController(orderService),
		cartService:    cartService,
		productService: productService,
	}
}

// asUser injects the authenticated principal the way the auth middleware
// would, so handlers can be exercised without minting tokens.
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) createProduct(t *testing.T, sellerID uint, title string, price float64) *model.Product {
	t.Helper()

	category := e.db.Categories.All()[0]
	product, err := e.productService.CreateProduct(sellerID, service.ProductInput{
		Title:       title,
		Description: "test listing",
		Price:       price,
		CategoryID:  category.ID,
	})
	require.NoError(t, err)
	return product
}

func performRequest(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "response body: %s", w.Body.String())
	return body
}
