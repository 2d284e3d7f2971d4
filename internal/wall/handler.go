// AngelaMos | 2026
// handler.go

package wall

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
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/wall/save", h.Save)
		r.Get("/wall/list", h.List)
		r.Get("/wall/{wallID}", h.Get)
		r.Put("/wall/update/{wallID}", h.Update)
		r.Delete("/wall/{wallID}", h.Delete)
	})
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	var req SaveWallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	wall, err := h.service.Save(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrDraftLimitReached) {
			core.Forbidden(w, "free draft limit reached, upgrade to save more walls")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, SaveWallResponse{WallID: wall.ID, Name: wall.Name})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	walls, err := h.service.List(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ListWallsResponse{Walls: walls})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	wallID, err := parseWallID(r)
	if err != nil {
		core.BadRequest(w, "invalid wall ID")
		return
	}

	wall, err := h.service.Get(r.Context(), userID, wallID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wall")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you do not own this wall")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, wall)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	wallID, err := parseWallID(r)
	if err != nil {
		core.BadRequest(w, "invalid wall ID")
		return
	}

	var req UpdateWallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	requester := Requester{
		UserID:        userID,
		Email:         middleware.GetUserEmail(r.Context()),
		Authenticated: true,
	}

	wall, err := h.service.Update(r.Context(), requester, wallID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wall")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "you cannot edit this wall")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UpdateWallResponse{
		Message: "wall updated",
		WallID:  wall.ID,
		Name:    wall.Name,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		core.Unauthorized(w, "")
		return
	}

	wallID, err := parseWallID(r)
	if err != nil {
		core.BadRequest(w, "invalid wall ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, wallID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "wall")
			return
		}
		if errors.Is(err, core.ErrForbidden) {
			core.Forbidden(w, "only the owner can delete a wall")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseWallID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "wallID"), 10, 64)
}
