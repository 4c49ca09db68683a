package game

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gameapi/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	log     *zap.Logger
}

func NewHTTPHandler(service *Service, log *zap.Logger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHandler{service: service, log: log}
}

type createReq struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	UserID      string  `json:"userId" validate:"required,notblank"`
}

// Create handles POST /v1/games
// @Summary Register an owned game
// @Tags games
// @Accept json
// @Produce json
// @Param request body createReq true "Game"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/games [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	g, err := h.service.Create(r.Context(), CreateInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, g)
}

// GetByID handles GET /v1/games/{id}
// @Summary Get an owned game
// @Tags games
// @Produce json
// @Param id path string true "Game ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/games/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, g, nil)
}

// ListByUser handles GET /v1/games/user/{userId}
// @Summary List games owned by a user
// @Tags games
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} httpx.SuccessResponse
// @Router /v1/games/user/{userId} [get]
func (h *HTTPHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, games, map[string]any{"total": len(games)})
}

// Delete handles DELETE /v1/games/{id}
// @Summary Delete an owned game
// @Tags games
// @Param id path string true "Game ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /v1/games/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Game not found", nil)
	case errors.Is(err, ErrUserNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "USER_NOT_FOUND", "User not found", nil)
	case errors.Is(err, ErrEmptyTitle):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []httpx.ErrorDetail{{Field: "title", Message: err.Error()}})
	case errors.Is(err, ErrEmptyUserID):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []httpx.ErrorDetail{{Field: "userId", Message: err.Error()}})
	default:
		h.log.Error("game request failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
