package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"taskboard/internal/core/domain"
)

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.Session, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) Login(ctx context.Context, email, password string) (domain.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) Authenticate(ctx context.Context, token string) (domain.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) CurrentUser(ctx context.Context, userID uint64) (domain.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.User), args.Error(1)
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	auth := new(authServiceMock)
	auth.On("Authenticate", mock.Anything, "good").Return(domain.User{ID: 7, Name: "Ada"}, nil)
	auth.On("Authenticate", mock.Anything, "bad").Return(domain.User{}, domain.ErrInvalidCredentials)

	r := gin.New()
	r.Use(LanguageMiddleware(), AuthMiddleware(auth))
	r.GET("/me", func(c *gin.Context) {
		user, ok := CurrentUser(c)
		require.True(t, ok)
		c.String(http.StatusOK, user.Name)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid token", header: "Bearer good", status: http.StatusOK},
		{name: "lower-case scheme", header: "bearer good", status: http.StatusOK},
		{name: "rejected token", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				require.Equal(t, "Ada", w.Body.String())
			} else {
				require.Contains(t, w.Body.String(), `"code":401`)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	require.Len(t, generated, 36)
	require.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLanguageMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(LanguageMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetLang(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "fr", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "en", w.Body.String())
}

func TestGinZapMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestIDMiddleware(), GinZapMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, zap.InfoLevel, entries[0].Level)
	require.Equal(t, zap.ErrorLevel, entries[1].Level)
	require.Equal(t, "/boom", entries[1].ContextMap()["path"])
	require.NotEmpty(t, entries[0].ContextMap()["request_id"])
}
