package report

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
)

type ServiceAPI interface {
	Usage(year int) (*UsageReport, error)
	Dashboard() (*AdminDashboard, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Usage serves the per-type, per-department and per-status breakdown
// for a financial year. Defaults to the current year.
func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	year := h.QueryInt(r, "year", 0)
	if year < 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	usage, err := h.Service.Usage(year)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to build usage report")
		return
	}
	h.WriteJSON(w, http.StatusOK, usage)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Service.Dashboard()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	h.WriteJSON(w, http.StatusOK, dashboard)
}
