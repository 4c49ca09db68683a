package catalog

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gameapi/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
	log *zap.Logger
}

func NewHTTPHandler(svc *Service, log *zap.Logger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHandler{svc: svc, log: log}
}

// List handles GET /v1/games
// @Summary List federated games
// @Description Combined game listing from every configured upstream provider
// @Tags games
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/games [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, entries, map[string]any{"total": len(entries)})
}

// Search handles GET /v1/catalog/games
// @Summary Search federated games
// @Description Filter the federated listing by title
// @Tags catalog
// @Produce json
// @Param q query string false "Title substring"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/catalog/games [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	entries, err := h.svc.Search(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, entries, map[string]any{"total": len(entries), "q": q})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var aggErr *AggregationError
	if errors.As(err, &aggErr) {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_FAILED", "Catalog provider unavailable", []httpx.ErrorDetail{
			{Field: "provider", Message: aggErr.Provider},
		})
		return
	}
	if errors.Is(err, ErrTransport) || errors.Is(err, ErrFormat) {
		httpx.JSONError(w, r, http.StatusBadGateway, "UPSTREAM_FAILED", "Catalog provider unavailable", nil)
		return
	}
	h.log.Error("catalog request failed", zap.String("request_id", httpx.RequestIDFrom(r)), zap.Error(err))
	httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
