package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

const validToken = "valid-token"

var (
	fixedNow   = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	fixedToday = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	authUser   = domain.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, ownerID uint64, filters domain.TaskFilters) (domain.TaskPage, error) {
	args := m.Called(ctx, ownerID, filters)
	return args.Get(0).(domain.TaskPage), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, ownerID, taskID uint64) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, ownerID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, ownerID, taskID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, ownerID, taskID uint64) error {
	args := m.Called(ctx, ownerID, taskID)
	return args.Error(0)
}

func (m *taskServiceMock) Statistics(ctx context.Context, ownerID uint64) (domain.TaskStatistics, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.TaskStatistics), args.Error(1)
}

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

// newRouter wires the real route table around mocked services. Requests carrying
// validToken authenticate as authUser.
func newRouter(taskService *taskServiceMock, authService *authServiceMock) *gin.Engine {
	authService.On("Authenticate", mock.Anything, validToken).Return(authUser, nil).Maybe()
	authService.On("Authenticate", mock.Anything, mock.Anything).Return(domain.User{}, domain.ErrInvalidCredentials).Maybe()

	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(nil),
		Auth:   handlers.NewAuthHandler(authService),
		Task:   handlers.NewTaskHandler(taskService, func() time.Time { return fixedNow }),
	}, authService)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Accept-Language", "en")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}
