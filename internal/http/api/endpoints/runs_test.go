package endpoints_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanvolpe/Productivity-app/internal/http/api/packets"
)

func openRun(t *testing.T, router *gin.Engine, playlistID int, date string) packets.RunResponse {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/runs", map[string]any{
		"playlist_id": playlistID,
		"date":        date,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func runAction(t *testing.T, router *gin.Engine, id, action string, body any) (*packets.RunResponse, int) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/runs/%s/%s", id, action), body)
	if w.Code != http.StatusOK {
		return nil, w.Code
	}
	var resp packets.RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp, w.Code
}

func TestOpenRunReflectsDayState(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)
	created := createMorningPlaylist(t, router)

	// one completion already on record for the day
	w := doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/api/playlists/%d/tasks/%d", created.ID, created.Tasks[0].ID),
		map[string]any{"is_completed": true, "date": "2024-01-01"})
	require.Equal(t, http.StatusOK, w.Code)

	resp := openRun(t, router, created.ID, "2024-01-01")
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, created.ID, resp.PlaylistID)
	assert.Equal(t, "2024-01-01", resp.Date)
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "completed", resp.Tasks[0].State)
	assert.Equal(t, "idle", resp.Tasks[1].State)
	assert.Equal(t, 5*60, resp.Tasks[0].RemainingSeconds)
	assert.Equal(t, 1, resp.CompletedCount)
	assert.Equal(t, 2, resp.TotalCount)
}

func TestOpenRunUnknownPlaylist(t *testing.T) {
	router := newTestRouter(newMemStore())
	w := doJSON(t, router, http.MethodPost, "/api/runs", map[string]any{
		"playlist_id": 999,
		"date":        "2024-01-01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunCompleteRestartFlow(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)
	created := createMorningPlaylist(t, router)

	opened := openRun(t, router, created.ID, "2024-01-01")

	// complete the first task: cursor advances, progress hits 50%
	resp, code := runAction(t, router, opened.ID, "complete", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, resp.Cursor)
	assert.Equal(t, "completed", resp.Tasks[0].State)
	assert.InDelta(t, 50.0, resp.Percent, 0.001)

	// the completion landed in the store and shows up in the day view
	views := resolveDate(t, router, "2024-01-01")
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].CompletedCount)

	// select back and restart: completion reverts
	resp, code = runAction(t, router, opened.ID, "select", map[string]any{"index": 0})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, resp.Cursor)

	resp, code = runAction(t, router, opened.ID, "restart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "idle", resp.Tasks[0].State)
	assert.Equal(t, 5*60, resp.Tasks[0].RemainingSeconds)
	assert.Zero(t, resp.Percent)

	views = resolveDate(t, router, "2024-01-01")
	require.Len(t, views, 1)
	assert.Equal(t, 0, views[0].CompletedCount)
}

func TestRunRestartWithoutCompletion(t *testing.T) {
	router := newTestRouter(newMemStore())
	created := createMorningPlaylist(t, router)
	opened := openRun(t, router, created.ID, "2024-01-01")

	_, code := runAction(t, router, opened.ID, "restart", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRunSelectValidation(t *testing.T) {
	router := newTestRouter(newMemStore())
	created := createMorningPlaylist(t, router)
	opened := openRun(t, router, created.ID, "2024-01-01")

	// index is required, and zero must still bind
	_, code := runAction(t, router, opened.ID, "select", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, code)

	resp, code := runAction(t, router, opened.ID, "select", map[string]any{"index": 0})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, resp.Cursor)

	_, code = runAction(t, router, opened.ID, "select", map[string]any{"index": 7})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRunPersistFailureKeepsSessionUsable(t *testing.T) {
	store := newMemStore()
	router := newTestRouter(store)
	created := createMorningPlaylist(t, router)
	opened := openRun(t, router, created.ID, "2024-01-01")

	store.mu.Lock()
	store.failWrites = true
	store.mu.Unlock()

	_, code := runAction(t, router, opened.ID, "complete", nil)
	assert.Equal(t, http.StatusInternalServerError, code)

	// the optimistic update was rolled back
	w := doJSON(t, router, http.MethodGet, "/api/runs/"+opened.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp packets.RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Cursor)
	assert.NotEqual(t, "completed", resp.Tasks[0].State)

	// once the store recovers, the retry goes through
	store.mu.Lock()
	store.failWrites = false
	store.mu.Unlock()

	retried, code := runAction(t, router, opened.ID, "complete", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "completed", retried.Tasks[0].State)
}

func TestRunCloseDiscardsSession(t *testing.T) {
	router := newTestRouter(newMemStore())
	created := createMorningPlaylist(t, router)
	opened := openRun(t, router, created.ID, "2024-01-01")

	w := doJSON(t, router, http.MethodDelete, "/api/runs/"+opened.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/runs/"+opened.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, code := runAction(t, router, opened.ID, "start", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestOpenRunRejectsBadDate(t *testing.T) {
	router := newTestRouter(newMemStore())
	created := createMorningPlaylist(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/runs", map[string]any{
		"playlist_id": created.ID,
		"date":        "garbage",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
