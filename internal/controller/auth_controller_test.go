package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quantum_edu_backend/internal/config"
	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/service"
	"quantum_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Lesson{},
		&model.UserProgress{},
		&model.Badge{},
		&model.UserBadge{},
		&model.TutorConversation{},
	)
	require.NoError(t, err)
	return db
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	authCtrl := NewAuthController(service.NewAuthService(repository.NewUserRepository(newTestDB(t)), cfg))

	router := gin.New()
	router.POST("/api/register", authCtrl.Register)
	router.POST("/api/login", authCtrl.Login)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterThenLogin(t *testing.T) {
	router := newAuthRouter(t)

	w := postJSON(t, router, "/api/register", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, http.StatusCreated, created.Code)

	w = postJSON(t, router, "/api/login", gin.H{
		"email": "ada@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var logged util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logged))
	data, ok := logged.Data.(map[string]interface{})
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, model.Student, claims.Role)
}

func TestRegisterValidation(t *testing.T) {
	router := newAuthRouter(t)

	// password shorter than 8 characters
	w := postJSON(t, router, "/api/register", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// malformed email
	w = postJSON(t, router, "/api/register", gin.H{
		"name": "Ada", "email": "not-an-email", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router := newAuthRouter(t)

	payload := gin.H{"name": "Ada", "email": "ada@example.com", "password": "correct-horse"}
	require.Equal(t, http.StatusCreated, postJSON(t, router, "/api/register", payload).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, router, "/api/register", payload).Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router := newAuthRouter(t)

	require.Equal(t, http.StatusCreated, postJSON(t, router, "/api/register", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "correct-horse",
	}).Code)

	w := postJSON(t, router, "/api/login", gin.H{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
