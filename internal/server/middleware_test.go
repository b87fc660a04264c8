package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "github.com/brightsales/atlas/internal/auth/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	claims authdomain.Claims
	err    error
}

func (f *fakeAuthService) Login(context.Context, string, string) (authdomain.LoginResult, error) {
	return authdomain.LoginResult{}, f.err
}

func (f *fakeAuthService) VerifyToken(string) (authdomain.Claims, error) {
	return f.claims, f.err
}

func setupAuthEngine(authSvc authdomain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ErrorHandlingMiddleware())

	s := &Server{engine: r, authSvc: authSvc}
	api := r.Group("/api")
	api.Use(s.AuthRequired())
	api.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetInt64(contextUserIDKey)})
	})
	return r
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	r := setupAuthEngine(&fakeAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":{"type":"unauthorized","message":"unauthorized"}}`, w.Body.String())
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	r := setupAuthEngine(&fakeAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	r := setupAuthEngine(&fakeAuthService{err: authdomain.ErrInvalidToken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	r := setupAuthEngine(&fakeAuthService{claims: authdomain.Claims{UserID: 7, Email: "ada@example.com"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":7}`, w.Body.String())
}
