package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskman/configs"
	"taskman/delivery/rest"
	"taskman/delivery/rest/dto"
	"taskman/internal/repository/inmemory"
	"taskman/internal/usecase"
	"taskman/server"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := inmemory.NewTaskStorage()
	svc := usecase.NewTaskService(repo)
	h := rest.NewHandler(svc)

	srv := server.NewServer(configs.ServerConfig{Host: "127.0.0.1", Port: 0}, h)
	return srv.Engine()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createTask(t *testing.T, engine *gin.Engine, body map[string]interface{}) dto.TaskResponse {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func TestHealthEndpoint(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp["status"])
}

func TestCreateTaskReturnsCreatedTask(t *testing.T) {
	engine := newTestServer(t)

	task := createTask(t, engine, map[string]interface{}{
		"title":    "Buy milk",
		"priority": "high",
		"category": "shopping",
	})

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "high", task.Priority)
	assert.Equal(t, "shopping", task.Category)
	assert.False(t, task.Completed)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestCreateTaskAppliesDefaults(t *testing.T) {
	engine := newTestServer(t)

	task := createTask(t, engine, map[string]interface{}{"title": "Plain"})

	assert.Equal(t, "medium", task.Priority)
	assert.Equal(t, "general", task.Category)
}

func TestCreateTaskEmptyTitleFailsValidation(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/tasks", map[string]interface{}{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "validation_error", errResp.Error)

	// nothing was persisted
	list := doJSON(t, engine, http.MethodGet, "/tasks", nil)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestCreateTaskUnknownEnumFailsValidation(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPost, "/tasks", map[string]interface{}{
		"title":    "Bad enum",
		"priority": "urgent",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTask(t *testing.T) {
	engine := newTestServer(t)
	created := createTask(t, engine, map[string]interface{}{"title": "Fetch me"})

	w := doJSON(t, engine, http.MethodGet, "/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, created.ID, task.ID)
}

func TestGetMissingTaskReturns404(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodGet, "/tasks/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "task_not_found", errResp.Error)
}

func TestUpdateTaskMergesFields(t *testing.T) {
	engine := newTestServer(t)
	created := createTask(t, engine, map[string]interface{}{
		"title":       "Original",
		"description": "keep me",
		"priority":    "low",
	})

	w := doJSON(t, engine, http.MethodPut, "/tasks/"+created.ID, map[string]interface{}{
		"title": "Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.Equal(t, "Renamed", task.Title)
	assert.Equal(t, "keep me", task.Description)
	assert.Equal(t, "low", task.Priority)
}

func TestUpdateTaskInvalidPriorityLeavesTaskUnchanged(t *testing.T) {
	engine := newTestServer(t)
	created := createTask(t, engine, map[string]interface{}{
		"title":    "Stable",
		"priority": "low",
	})

	w := doJSON(t, engine, http.MethodPut, "/tasks/"+created.ID, map[string]interface{}{
		"priority": "invalid",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	after := doJSON(t, engine, http.MethodGet, "/tasks/"+created.ID, nil)
	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(after.Body.Bytes(), &task))
	assert.Equal(t, "low", task.Priority)
}

func TestUpdateMissingTaskReturns404(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPut, "/tasks/no-such-id", map[string]interface{}{
		"title": "nope",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleTaskIsSelfInverse(t *testing.T) {
	engine := newTestServer(t)
	created := createTask(t, engine, map[string]interface{}{"title": "Flip me"})

	w := doJSON(t, engine, http.MethodPatch, "/tasks/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var task dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.True(t, task.Completed)

	w = doJSON(t, engine, http.MethodPatch, "/tasks/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	assert.False(t, task.Completed)
}

func TestToggleMissingTaskReturns404(t *testing.T) {
	engine := newTestServer(t)

	w := doJSON(t, engine, http.MethodPatch, "/tasks/no-such-id/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTaskReturnsConfirmation(t *testing.T) {
	engine := newTestServer(t)
	created := createTask(t, engine, map[string]interface{}{"title": "Doomed"})

	w := doJSON(t, engine, http.MethodDelete, "/tasks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.DeleteTaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Task deleted successfully", resp.Message)
	require.NotNil(t, resp.Task)
	assert.Equal(t, created.ID, resp.Task.ID)

	// gone afterwards, deterministically
	assert.Equal(t, http.StatusNotFound, doJSON(t, engine, http.MethodGet, "/tasks/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, engine, http.MethodDelete, "/tasks/"+created.ID, nil).Code)
}

func TestListFiltersByStatus(t *testing.T) {
	engine := newTestServer(t)
	createTask(t, engine, map[string]interface{}{"title": "active one"})
	done := createTask(t, engine, map[string]interface{}{"title": "done one"})
	doJSON(t, engine, http.MethodPatch, "/tasks/"+done.ID+"/toggle", nil)

	w := doJSON(t, engine, http.MethodGet, "/tasks?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, done.ID, tasks[0].ID)
	assert.True(t, tasks[0].Completed)
}

func TestListSearchFindsDescriptionMatch(t *testing.T) {
	engine := newTestServer(t)
	target := createTask(t, engine, map[string]interface{}{
		"title":       "Errands",
		"description": "pick up dry cleaning",
	})
	createTask(t, engine, map[string]interface{}{"title": "Groceries"})

	w := doJSON(t, engine, http.MethodGet, "/tasks?search=dry+cleaning", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, target.ID, tasks[0].ID)
}

func TestListSortByDateReturnsEarlierDueFirst(t *testing.T) {
	engine := newTestServer(t)
	createTask(t, engine, map[string]interface{}{"title": "later", "dueDate": "2026-09-15"})
	createTask(t, engine, map[string]interface{}{"title": "sooner", "dueDate": "2026-09-01"})

	w := doJSON(t, engine, http.MethodGet, "/tasks?sortBy=date", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tasks []dto.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, "sooner", tasks[0].Title)
	assert.Equal(t, "later", tasks[1].Title)
}

func TestStatsSummaryScenario(t *testing.T) {
	engine := newTestServer(t)
	task := createTask(t, engine, map[string]interface{}{
		"title":    "Buy milk",
		"priority": "high",
		"category": "shopping",
	})

	w := doJSON(t, engine, http.MethodGet, "/tasks/stats/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats dto.StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.HighPriority)
	assert.Equal(t, int64(0), stats.Completed)

	doJSON(t, engine, http.MethodPatch, fmt.Sprintf("/tasks/%s/toggle", task.ID), nil)

	w = doJSON(t, engine, http.MethodGet, "/tasks/stats/summary", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(0), stats.HighPriority)
	assert.Equal(t, int64(1), stats.Completed)
	assert.Equal(t, stats.Total, stats.Completed+stats.Pending)
}
