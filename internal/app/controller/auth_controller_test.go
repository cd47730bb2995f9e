package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(env *testEnv) *gin.Engine {
	engine := gin.New()
	engine.POST("/api/register", env.auth.Register)
	engine.POST("/api/login", env.auth.Login)
	engine.POST("/api/logout", env.auth.Logout)
	return engine
}

func userRouter(env *testEnv, userID uint) *gin.Engine {
	engine := gin.New()
	group := engine.Group("/api/user", asUser(userID))
	group.GET("", env.auth.GetMe)
	group.PUT("", env.auth.UpdateMe)
	return engine
}

func TestAuthController_Register(t *testing.T) {
	env := newTestEnv(t)
	engine := authRouter(env)

	w := performRequest(engine, http.MethodPost, "/api/register", gin.H{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "secret123",
		"full_name": "Alice Kim",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")

	tokens := body["tokens"].(map[string]interface{})
	assert.NotEmpty(t, tokens["access_token"])
}

func TestAuthController_RegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	engine := authRouter(env)

	w := performRequest(engine, http.MethodPost, "/api/register", gin.H{
		"username": "al",
		"email":    "not-an-email",
		"password": "123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_INVALID_INPUT", body["error"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestAuthController_RegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	engine := authRouter(env)

	payload := gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}
	w := performRequest(engine, http.MethodPost, "/api/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(engine, http.MethodPost, "/api/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "AUTH_USERNAME_EXISTS", decodeBody(t, w)["error"])
}

func TestAuthController_LoginAndLogout(t *testing.T) {
	env := newTestEnv(t)
	engine := authRouter(env)

	w := performRequest(engine, http.MethodPost, "/api/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(engine, http.MethodPost, "/api/login", gin.H{
		"username": "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(engine, http.MethodPost, "/api/login", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_INVALID_CREDENTIALS", decodeBody(t, w)["error"])

	w = performRequest(engine, http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_GetMe(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	engine := userRouter(env, user.ID)

	w := performRequest(engine, http.MethodGet, "/api/user", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["username"])
}

func TestAuthController_UpdateMe(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice")
	engine := userRouter(env, user.ID)

	w := performRequest(engine, http.MethodPut, "/api/user", gin.H{
		"full_name": "Alice Kim",
		"phone":     "010-1234-5678",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Alice Kim", body["full_name"])
	assert.Equal(t, "010-1234-5678", body["phone"])
}
