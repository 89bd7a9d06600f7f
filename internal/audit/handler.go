package audit

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service      *Service
	ItemsPerPage int
	MaxPerPage   int
}

func NewHandler(svc *Service, itemsPerPage, maxPerPage int) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	if itemsPerPage <= 0 {
		itemsPerPage = 15
	}
	if maxPerPage <= 0 {
		maxPerPage = 100
	}
	return &Handler{
		BaseHandler:  transport.NewBaseHandler(lg),
		Service:      svc,
		ItemsPerPage: itemsPerPage,
		MaxPerPage:   maxPerPage,
	}
}

// List is the admin view of the audit trail, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := h.QueryInt(r, "limit", h.ItemsPerPage)
	if limit <= 0 {
		limit = h.ItemsPerPage
	}
	if limit > h.MaxPerPage {
		limit = h.MaxPerPage
	}
	offset := h.QueryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	filter := ListFilter{
		UserID:     int64(h.QueryInt(r, "user_id", 0)),
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entity_type"),
		Limit:      limit,
		Offset:     offset,
	}

	resp, err := h.Service.List(filter)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to list audit logs")
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}
