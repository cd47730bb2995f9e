package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRouter(env *testEnv, userID uint) *gin.Engine {
	engine := gin.New()
	engine.GET("/api/categories", env.products.GetCategories)
	engine.GET("/api/products", env.products.GetAllProducts)
	engine.GET("/api/products/:id", env.products.GetProductByID)
	engine.POST("/api/products", asUser(userID), env.products.CreateProduct)
	engine.PUT("/api/products/:id", asUser(userID), env.products.UpdateProduct)
	engine.DELETE("/api/products/:id", asUser(userID), env.products.DeleteProduct)
	engine.GET("/api/user/products", asUser(userID), env.products.GetMyProducts)
	return engine
}

func TestProductController_GetCategories(t *testing.T) {
	env := newTestEnv(t)
	engine := productRouter(env, 0)

	w := performRequest(engine, http.MethodGet, "/api/categories", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	categories := body["categories"].([]interface{})
	assert.Len(t, categories, 4)
}

func TestProductController_CreateProduct(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	engine := productRouter(env, seller.ID)

	category := env.db.Categories.All()[0]
	w := performRequest(engine, http.MethodPost, "/api/products", gin.H{
		"title":       "Bamboo Lamp",
		"description": "Handmade bamboo desk lamp",
		"price":       24.5,
		"category_id": category.ID,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Bamboo Lamp", body["title"])
	assert.Equal(t, float64(seller.ID), body["seller_id"])
}

func TestProductController_CreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	engine := productRouter(env, seller.ID)

	// Title too short, price and category missing
	w := performRequest(engine, http.MethodPost, "/api/products", gin.H{
		"title":       "ab",
		"description": "x",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	require.Contains(t, body, "fields")
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "price")
}

func TestProductController_CreateProductUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	engine := productRouter(env, seller.ID)

	w := performRequest(engine, http.MethodPost, "/api/products", gin.H{
		"title":       "Bamboo Lamp",
		"description": "Handmade",
		"price":       24.5,
		"category_id": 99,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "CATEGORY_NOT_FOUND", body["error"])
}

func TestProductController_GetProductByID(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	product := env.createProduct(t, seller.ID, "Bamboo Lamp", 24.5)
	engine := productRouter(env, 0)

	w := performRequest(engine, http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Bamboo Lamp", body["title"])
	seller2 := body["seller"].(map[string]interface{})
	assert.Equal(t, "seller", seller2["username"])

	w = performRequest(engine, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(engine, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_ListProductsFilters(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	env.createProduct(t, seller.ID, "Bamboo Lamp", 24.5)
	env.createProduct(t, seller.ID, "Cotton Tote", 8)
	engine := productRouter(env, 0)

	w := performRequest(engine, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])

	w = performRequest(engine, http.MethodGet, "/api/products?search=tote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = performRequest(engine, http.MethodGet, "/api/products?category=no-such", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestProductController_UpdateProductOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	intruder := env.createUser(t, "intruder")
	product := env.createProduct(t, seller.ID, "Bamboo Lamp", 24.5)

	engine := productRouter(env, intruder.ID)
	w := performRequest(engine, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), gin.H{
		"price": 1.0,
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AUTHZ_OWNER_ONLY", body["error"])
}

func TestProductController_UpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	product := env.createProduct(t, seller.ID, "Bamboo Lamp", 24.5)

	engine := productRouter(env, seller.ID)
	w := performRequest(engine, http.MethodPut, fmt.Sprintf("/api/products/%d", product.ID), gin.H{
		"price": 19.9,
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, 19.9, body["price"])
	assert.Equal(t, "Bamboo Lamp", body["title"])
}

func TestProductController_DeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	product := env.createProduct(t, seller.ID, "Bamboo Lamp", 24.5)

	engine := productRouter(env, seller.ID)
	w := performRequest(engine, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = performRequest(engine, http.MethodDelete, fmt.Sprintf("/api/products/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_GetMyProducts(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	other := env.createUser(t, "other")
	env.createProduct(t, seller.ID, "Bamboo Lamp", 24.5)
	env.createProduct(t, other.ID, "Cotton Tote", 8)

	engine := productRouter(env, seller.ID)
	w := performRequest(engine, http.MethodGet, "/api/user/products", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}
