// AngelaMos | 2026
// handler_test.go

package share

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passthrough(next http.Handler) http.Handler {
	return next
}

func newTestRouter(repo *fakeRepo) chi.Router {
	svc := NewService(repo, "https://mialtar.example")
	handler := NewHandler(svc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r, passthrough, passthrough)
	return r
}

func TestViewPublic_OK(t *testing.T) {
	repo := newFakeRepo()
	repo.addWall(5, "owner")
	router := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/wall/public/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Wall WallView `json:"wall"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, int64(5), body.Data.Wall.ID)
}

func TestViewPublic_NotFound(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/wall/public/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestViewPublic_InvalidID(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/wall/public/not-a-number", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestViewShared_RequiresEmail(t *testing.T) {
	// Without claims in context the requester has no email, so the
	// handler answers 401 even before touching the service.
	router := newTestRouter(newFakeRepo())

	req := httptest.NewRequest(http.MethodGet, "/wall/view/abcdef", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
