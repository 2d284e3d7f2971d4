// AngelaMos | 2026
// handler.go

package share

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

// RegisterRoutes mounts the share endpoints. The public view takes
// optionalAuth so an expired bearer token degrades to anonymous
// instead of blocking the read.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/wall/share/private", h.SharePrivate)
		r.Get("/wall/view/{shareToken}", h.ViewShared)
	})

	r.With(optionalAuth).Get("/wall/public/{wallID}", h.ViewPublic)
}

func (h *Handler) SharePrivate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req PrivateShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.CreateOrUpdatePrivateShare(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wall")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only the owner can share this wall")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ViewShared(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())
	if email == "" {
		core.Unauthorized(w, "")
		return
	}

	token := chi.URLParam(r, "shareToken")
	if token == "" {
		core.BadRequest(w, "share token required")
		return
	}

	resp, err := h.service.ResolvePrivateAccess(r.Context(), token, email)
	if err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you do not have access to this wall")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wall")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ViewPublic(w http.ResponseWriter, r *http.Request) {
	wallID, err := strconv.ParseInt(chi.URLParam(r, "wallID"), 10, 64)
	if err != nil {
		core.BadRequest(w, "invalid wall ID")
		return
	}

	resp, err := h.service.ResolvePublicAccess(r.Context(), wallID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wall")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
