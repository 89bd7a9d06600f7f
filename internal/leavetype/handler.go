package leavetype

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ActiveLeaveTypes() ([]LeaveType, error)
	AllLeaveTypes() ([]LeaveType, error)
	GetByID(id int64) (*LeaveType, error)
	Create(dto CreateLeaveTypeDTO) (*LeaveType, error)
	Update(id int64, dto UpdateLeaveTypeDTO) (*LeaveType, error)
	Deactivate(id int64) error
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

// ListActive feeds the leave type picker on the submission form.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ActiveLeaveTypes()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get leave types")
		return
	}
	h.WriteJSON(w, http.StatusOK, LeaveTypesResponse{LeaveTypes: types})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.AllLeaveTypes()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get leave types")
		return
	}
	h.WriteJSON(w, http.StatusOK, LeaveTypesResponse{LeaveTypes: types})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	lt, err := h.Service.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "leave type not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, lt)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateLeaveTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lt, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, lt)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var dto UpdateLeaveTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lt, err := h.Service.Update(id, dto)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "leave type not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, lt)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Deactivate(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			h.WriteError(w, http.StatusNotFound, "leave type not found")
			return
		}
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "leave type deactivated"})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid leave type ID")
		return 0, false
	}
	return id, true
}
