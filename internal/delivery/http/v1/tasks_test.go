package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-api/internal/delivery/http/v1"
	"task-api/internal/models"
	"task-api/internal/store"
)

func newTestRouter(taskStore store.TaskStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := v1.New(zerolog.Nop(), taskStore)
	router.Use(handler.HandleRequestIDMiddleware)
	v1.RegisterRoutes(router, handler)
	return router
}

func perform(router *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

type taskBody struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func decodeTask(t *testing.T, rr *httptest.ResponseRecorder) taskBody {
	t.Helper()
	var body taskBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

func TestHandleCreateTask(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rr := perform(router, http.MethodPost, "/tasks", []byte(`{"title":"Buy milk"}`))
	require.Equal(t, http.StatusCreated, rr.Code)

	task := decodeTask(t, rr)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestHandleCreateTask_Invalid(t *testing.T) {
	memStore := store.NewMemoryStore()
	router := newTestRouter(memStore)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"description":"no title"}`},
		{"empty title", `{"title":""}`},
		{"blank title", `{"title":"   "}`},
		{"malformed json", `{"title":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := perform(router, http.MethodPost, "/tasks", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decodeError(t, rr))
		})
	}

	tasks, err := memStore.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks, "rejected requests must not create records")
}

func TestHandleGetTask(t *testing.T) {
	memStore := store.NewMemoryStore()
	router := newTestRouter(memStore)

	created, err := memStore.Create(context.Background(), store.CreateFields{
		Title:       "Buy milk",
		Description: "2 liters",
	})
	require.NoError(t, err)

	rr := perform(router, http.MethodGet, "/tasks/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	task := decodeTask(t, rr)
	assert.Equal(t, created.ID.Hex(), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2 liters", task.Description)
}

func TestHandleGetTask_NotFound(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rr := perform(router, http.MethodGet, "/tasks/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// A malformed id is reported the same way as a missing one.
	rr = perform(router, http.MethodGet, "/tasks/not-a-hex-id", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleUpdateTask_Partial(t *testing.T) {
	memStore := store.NewMemoryStore()
	router := newTestRouter(memStore)

	created, err := memStore.Create(context.Background(), store.CreateFields{
		Title:       "Buy milk",
		Description: "2 liters",
	})
	require.NoError(t, err)

	rr := perform(router, http.MethodPut, "/tasks/"+created.ID.Hex(),
		[]byte(`{"status":"completed"}`))
	require.Equal(t, http.StatusOK, rr.Code)

	task := decodeTask(t, rr)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2 liters", task.Description)
	assert.Equal(t, models.StatusCompleted, task.Status)
	assert.False(t, task.UpdatedAt.Before(task.CreatedAt))
}

func TestHandleUpdateTask_Errors(t *testing.T) {
	memStore := store.NewMemoryStore()
	router := newTestRouter(memStore)

	created, err := memStore.Create(context.Background(), store.CreateFields{Title: "Buy milk"})
	require.NoError(t, err)

	rr := perform(router, http.MethodPut, "/tasks/"+created.ID.Hex(), []byte(`{"title":""}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = perform(router, http.MethodPut, "/tasks/"+primitive.NewObjectID().Hex(),
		[]byte(`{"title":"new"}`))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	got, err := memStore.Get(context.Background(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
}

func TestHandleDeleteTask(t *testing.T) {
	memStore := store.NewMemoryStore()
	router := newTestRouter(memStore)

	created, err := memStore.Create(context.Background(), store.CreateFields{Title: "Buy milk"})
	require.NoError(t, err)

	rr := perform(router, http.MethodDelete, "/tasks/"+created.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	task := decodeTask(t, rr)
	assert.Equal(t, created.ID.Hex(), task.ID)
	assert.Equal(t, "Buy milk", task.Title)

	rr = perform(router, http.MethodGet, "/tasks/"+created.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleDeleteTask_NotFound(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rr := perform(router, http.MethodDelete, "/tasks/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleListTasks(t *testing.T) {
	memStore := store.NewMemoryStore()
	router := newTestRouter(memStore)

	rr := perform(router, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())

	for _, title := range []string{"first", "second"} {
		_, err := memStore.Create(context.Background(), store.CreateFields{Title: title})
		require.NoError(t, err)
	}

	rr = perform(router, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var tasks []taskBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
}

// unavailableStore fails every operation, standing in for an
// unreachable backing store.
type unavailableStore struct{}

func (unavailableStore) List(context.Context) ([]models.Task, error) {
	return nil, store.ErrStoreUnavailable
}

func (unavailableStore) Get(context.Context, string) (*models.Task, error) {
	return nil, store.ErrStoreUnavailable
}

func (unavailableStore) Create(context.Context, store.CreateFields) (*models.Task, error) {
	return nil, store.ErrStoreUnavailable
}

func (unavailableStore) Update(context.Context, string, store.UpdateFields) (*models.Task, error) {
	return nil, store.ErrStoreUnavailable
}

func (unavailableStore) Delete(context.Context, string) (*models.Task, error) {
	return nil, store.ErrStoreUnavailable
}

func (unavailableStore) Ping(context.Context) error {
	return store.ErrStoreUnavailable
}

func TestStoreUnavailable(t *testing.T) {
	router := newTestRouter(unavailableStore{})

	rr := perform(router, http.MethodGet, "/tasks", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, store.ErrStoreUnavailable.Error(), decodeError(t, rr))

	rr = perform(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rr := perform(router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	router := newTestRouter(store.NewMemoryStore())

	rr := perform(router, http.MethodGet, "/tasks", nil)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("X-Request-Id", "test-request-id")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "test-request-id", rr.Header().Get("X-Request-Id"))
}
