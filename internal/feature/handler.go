// AngelaMos | 2026
// handler.go

package feature

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/mialtar/internal/core"
	"github.com/carterperez-dev/mialtar/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/features", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/user", h.GetUserFeatures)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", h.ListCatalog)
			r.Put("/{featureID}", h.UpdateFeature)
		})
	})
}

func (h *Handler) GetUserFeatures(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	resp, err := h.service.GetUserFeatures(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	features, err := h.service.ListCatalog(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, CatalogResponse{Features: features})
}

func (h *Handler) UpdateFeature(w http.ResponseWriter, r *http.Request) {
	featureID, err := strconv.ParseInt(chi.URLParam(r, "featureID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid feature ID")
		return
	}

	var req UpdateFeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	f, err := h.service.UpdateFeature(r.Context(), featureID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "feature")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, f)
}
