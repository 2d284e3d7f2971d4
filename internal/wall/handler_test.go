// AngelaMos | 2026
// handler_test.go

package wall

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mialtar/internal/middleware"
)

func claimsInjector(userID, email string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
			ctx = context.WithValue(ctx, middleware.UserEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newHandlerRouter(repo *fakeRepo, userID string) chi.Router {
	users := &fakeUsers{premium: map[string]bool{userID: true}}
	svc := newTestService(repo, users, 3)
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, claimsInjector(userID, userID+"@example.com"))
	return r
}

func TestUpdateHandler_AcknowledgesWithoutWallData(t *testing.T) {
	repo := newFakeRepo()
	router := newHandlerRouter(repo, "owner")

	wall := &Wall{
		UserID:   "owner",
		Name:     "before",
		WallData: json.RawMessage(`{"a":1}`),
	}
	require.NoError(t, repo.Create(context.Background(), wall))

	body := bytes.NewBufferString(`{"name":"after"}`)
	req := httptest.NewRequest(http.MethodPut, "/wall/update/1", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "wall updated", data["message"])
	assert.Equal(t, float64(wall.ID), data["wall_id"])
	assert.Equal(t, "after", data["name"])
	assert.NotContains(t, data, "wall_data")
}

func TestUpdateHandler_MissingWall(t *testing.T) {
	router := newHandlerRouter(newFakeRepo(), "owner")

	body := bytes.NewBufferString(`{"name":"after"}`)
	req := httptest.NewRequest(http.MethodPut, "/wall/update/99", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
