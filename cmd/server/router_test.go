package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(legacy bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            0,
			LogLevel:        "debug",
			ShutdownTimeout: 5 * time.Second,
		},
		API: config.APIConfig{
			LegacyResponses:    legacy,
			CORSAllowedOrigins: []string{"*"},
			MaxBodyBytes:       config.DefaultMaxBodyBytes,
		},
	}
}

func newTestApp(t *testing.T, legacy bool) *application {
	t.Helper()
	_, log := logger.CaptureLogs(t)
	return &application{
		config:    newTestConfig(legacy),
		logger:    log,
		taskStore: testdb.NewSQLiteTaskStore(t),
	}
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func listTasks(t *testing.T, handler http.Handler) []api.LegacyTaskResponse {
	t.Helper()
	rr := do(t, handler, http.MethodGet, "/tasks", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var tasks []api.LegacyTaskResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tasks))
	return tasks
}

func TestRouter_TaskLifecycle(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	rr := do(t, router, http.MethodGet, "/api", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Table Created... Tasks API Ready", rr.Body.String())

	rr = do(t, router, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = do(t, router, http.MethodPost, "/tasks", `{"title":"A","description":"B"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"title":"A","description":"B"}`, rr.Body.String())

	tasks := listTasks(t, router)
	require.Len(t, tasks, 1)
	id := tasks[0].ID
	assert.Equal(t, "A", *tasks[0].Title)
	assert.Equal(t, "B", *tasks[0].Description)

	path := "/api/tasks/" + jsonNumber(id)

	rr = do(t, router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":`+jsonNumber(id)+`,"title":"A","description":"B"}`, rr.Body.String())

	rr = do(t, router, http.MethodPut, path, `{"title":"C","description":"D"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task updated"}`, rr.Body.String())

	rr = do(t, router, http.MethodGet, path, "")
	assert.JSONEq(t, `{"id":`+jsonNumber(id)+`,"title":"C","description":"D"}`, rr.Body.String())

	rr = do(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task deleted"}`, rr.Body.String())

	rr = do(t, router, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task not found"}`, rr.Body.String())

	// Deleting again is still reported as success.
	rr = do(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task deleted"}`, rr.Body.String())

	assert.Empty(t, listTasks(t, router))
}

func TestRouter_LegacyMissingTask(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	rr := do(t, router, http.MethodGet, "/api/tasks/-1", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task not found"}`, rr.Body.String())

	rr = do(t, router, http.MethodPut, "/api/tasks/12345", `{"title":"x","description":"y"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Task updated"}`, rr.Body.String())

	assert.Empty(t, listTasks(t, router), "updating a missing task must not create one")
}

func TestRouter_StrictMissingTask(t *testing.T) {
	router := newTestApp(t, false).setupRouter()

	for _, tc := range []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"x","description":"y"}`},
		{http.MethodDelete, ""},
	} {
		rr := do(t, router, tc.method, "/api/tasks/-1", tc.body)
		assert.Equal(t, http.StatusNotFound, rr.Code, tc.method)
		assert.JSONEq(t, `{"message":"Task not found"}`, rr.Body.String(), tc.method)
	}
}

func TestRouter_NullAndEmptyFields(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	rr := do(t, router, http.MethodPost, "/tasks", `{"title":"","description":""}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, router, http.MethodPost, "/tasks", `{"title":null,"description":"only"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"title":null,"description":"only"}`, rr.Body.String())

	tasks := listTasks(t, router)
	require.Len(t, tasks, 2)

	byDescription := map[string]api.LegacyTaskResponse{}
	for _, task := range tasks {
		byDescription[*task.Description] = task
	}
	require.NotNil(t, byDescription[""].Title)
	assert.Equal(t, "", *byDescription[""].Title)
	assert.Nil(t, byDescription["only"].Title)
}

func TestRouter_RejectsBadInput(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"missing description", http.MethodPost, "/tasks", `{"title":"A"}`},
		{"unknown field", http.MethodPost, "/tasks", `{"title":"A","description":"B","owner":"me"}`},
		{"malformed body", http.MethodPost, "/tasks", `not json`},
		{"non-integer id", http.MethodGet, "/api/tasks/abc", ""},
		{"overflowing id", http.MethodDelete, "/api/tasks/99999999999999999999", ""},
		{"missing title on update", http.MethodPut, "/api/tasks/1", `{"description":"B"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, router, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(apiMiddleware.TraceIDHeader))
		})
	}

	assert.Empty(t, listTasks(t, router))
}

func TestRouter_OptionsAndCORS(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	rr := do(t, router, http.MethodOptions, "/api/tasks", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	for _, path := range []string{"/api/tasks", "/tasks", "/api/tasks/1"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "http://frontend.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Content-Type")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Origin", "http://frontend.example")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Health(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	rr := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRouter_StorageFailure(t *testing.T) {
	app := newTestApp(t, true)
	router := app.setupRouter()
	require.NoError(t, app.taskStore.Close())

	rr := do(t, router, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
	assert.NotEmpty(t, body["trace_id"])

	// The readiness route swallows the schema failure.
	rr = do(t, router, http.MethodGet, "/api", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_LargeBodyAcceptedByDefault(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	description := strings.Repeat("x", 2<<20)
	body, err := json.Marshal(map[string]string{"title": "big", "description": description})
	require.NoError(t, err)

	rr := do(t, router, http.MethodPost, "/tasks", string(body))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, string(body), rr.Body.String())

	tasks := listTasks(t, router)
	require.Len(t, tasks, 1)
	assert.Len(t, *tasks[0].Description, len(description))
}

func TestRouter_BodyOverConfiguredLimit(t *testing.T) {
	app := newTestApp(t, true)
	app.config.API.MaxBodyBytes = 1024
	router := app.setupRouter()

	body := `{"title":"big","description":"` + strings.Repeat("x", 2048) + `"}`
	rr := do(t, router, http.MethodPost, "/tasks", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Request body too large", resp["error"])

	rr = do(t, router, http.MethodPut, "/api/tasks/1", body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)

	assert.Empty(t, listTasks(t, router))
}

func TestRouter_UnknownRoutes(t *testing.T) {
	router := newTestApp(t, true).setupRouter()

	for _, path := range []string{"/api/tasks/", "/api/tasks/1/", "/api/tasks/1/extra", "/nope"} {
		rr := do(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rr.Code, path)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), path)
		assert.Equal(t, "Resource not found", resp["error"], path)
		assert.NotEmpty(t, resp["trace_id"], path)
	}

	rr := do(t, router, http.MethodPatch, "/tasks", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Contains(t, rr.Body.String(), "Method not allowed")
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
