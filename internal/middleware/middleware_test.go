package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/client_ledger/internal/core/domain"
	"github.com/SscSPs/client_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(newLogger(&buf)))
	r.GET("/ping", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("handled")
		c.Status(http.StatusOK)
	})

	t.Run("generated", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(middleware.RequestIDHeader)
		assert.NotEmpty(t, id)
		assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)
		assert.Contains(t, buf.String(), "Request completed")
	})

	t.Run("propagated", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, buf.String(), `"request_id":"abc-123"`)
	})
}

func TestGetLoggerFromCtx_FallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(req.Context()))
}

func signedToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	return signClaims(t, secret, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
	})
}

func signClaims(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "s3cret"
	r := gin.New()
	r.Use(middleware.AuthMiddleware(secret))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.ActorFromContext(c))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer " + signedToken(t, secret, "user-7", time.Hour), wantStatus: http.StatusOK, wantBody: "user-7"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + signedToken(t, "other", "user-7", time.Hour), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signedToken(t, secret, "user-7", -time.Minute), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Token has expired"}`},
		{name: "lowercase scheme", header: "bearer " + signedToken(t, secret, "user-7", time.Hour), wantStatus: http.StatusOK, wantBody: "user-7"},
		{name: "blank subject", header: "Bearer " + signedToken(t, secret, "  ", time.Hour), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid token claims"}`},
		{name: "unsigned token", header: "Bearer " + unsignedToken(t), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Invalid token"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func unsignedToken(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-7"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware_Issuer(t *testing.T) {
	const secret = "s3cret"
	r := gin.New()
	r.Use(middleware.AuthMiddleware(secret, jwt.WithIssuer("front-office")))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.ActorFromContext(c))
	})

	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))
	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := call(signClaims(t, secret, jwt.RegisteredClaims{Subject: "clerk", Issuer: "front-office", ExpiresAt: exp}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clerk", w.Body.String())

	w = call(signClaims(t, secret, jwt.RegisteredClaims{Subject: "clerk", Issuer: "elsewhere", ExpiresAt: exp}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `{"error":"Token issuer not accepted"}`, w.Body.String())
}

func TestAuthMiddleware_ActorOnRequestLogger(t *testing.T) {
	const secret = "s3cret"
	var buf bytes.Buffer
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(newLogger(&buf)), middleware.AuthMiddleware(secret))
	r.POST("/transactions", func(c *gin.Context) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created")
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, secret, "clerk-3", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, buf.String(), `"actor":"clerk-3"`)
}

func TestActorFromContext_DefaultsToSystem(t *testing.T) {
	r := gin.New()
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.ActorFromContext(c))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, domain.SystemActor, w.Body.String())
}

func TestRateLimit(t *testing.T) {
	limiter, err := middleware.NewRateLimiter("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.Use(middleware.RateLimit(limiter))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewRateLimiter("lots")
	assert.Error(t, err)
}
