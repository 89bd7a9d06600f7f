package leave

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/leave-management/internal/auth"
	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Submit(ctx context.Context, userID int64, dto SubmitLeaveDTO) (*LeaveRequest, error)
	Approve(ctx context.Context, requestID, approverID int64, comments string) error
	Reject(ctx context.Context, requestID, approverID int64, comments string) error
	RequestByID(requestID, userID int64, isAdmin bool) (*LeaveRequest, error)
	RequestsForUser(userID int64, limit, offset int) ([]*LeaveRequest, error)
	ListRequests(filter ListFilter) (*RequestListResponse, error)
	Dashboard(userID int64) (*DashboardResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service      ServiceAPI
	ItemsPerPage int
	MaxPerPage   int
}

func NewHandler(service ServiceAPI, itemsPerPage, maxPerPage int) *Handler {
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
		Service:      service,
		ItemsPerPage: itemsPerPage,
		MaxPerPage:   maxPerPage,
	}
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Submit(r.Context(), user.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitRequest: service error", "error", err, "user_id", user.ID)

		switch {
		case errors.Is(err, ErrLeaveTypeNotFound):
			h.WriteError(w, http.StatusNotFound, "leave type not found")
		case errors.Is(err, ErrOverlappingRequest):
			h.WriteError(w, http.StatusConflict, "an overlapping leave request already exists")
		case errors.Is(err, ErrInsufficientBalance):
			h.WriteError(w, http.StatusUnprocessableEntity, "insufficient leave balance")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("SubmitRequest: leave request created",
		"request_id", req.ID,
		"user_id", user.ID,
		"days", req.NumberOfDays)

	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, err := h.Service.RequestByID(requestID, user.ID, user.IsAdmin())
	if err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			h.WriteError(w, http.StatusNotFound, "leave request not found")
		case errors.Is(err, ErrUnauthorizedAccess):
			h.WriteError(w, http.StatusForbidden, "access denied")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) MyRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := h.pagination(r)

	requests, err := h.Service.RequestsForUser(user.ID, limit, offset)
	if err != nil {
		h.Logger.Error("MyRequests: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get leave requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"limit":    limit,
		"offset":   offset,
	})
}

// ListAllRequests is the admin-wide listing with an optional status
// filter.
func (h *Handler) ListAllRequests(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.pagination(r)

	filter := ListFilter{
		Status: Status(r.URL.Query().Get("status")),
		Limit:  limit,
		Offset: offset,
	}

	resp, err := h.Service.ListRequests(filter)
	if err != nil {
		if filter.Status != "" && !filter.Status.Valid() {
			h.WriteError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		h.Logger.Error("ListAllRequests: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list leave requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	dto := h.decision(r)

	if err := h.Service.Approve(r.Context(), requestID, user.ID, dto.Comments); err != nil {
		h.Logger.Error("ApproveRequest: service error", "error", err, "request_id", requestID, "approver_id", user.ID)

		switch {
		case errors.Is(err, ErrRequestNotFound):
			h.WriteError(w, http.StatusNotFound, "leave request not found")
		case errors.Is(err, ErrInvalidRequestStatus):
			h.WriteError(w, http.StatusBadRequest, "request cannot be approved in current status")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to approve leave request")
		}
		return
	}

	h.Logger.Info("ApproveRequest: leave request approved", "request_id", requestID, "approver_id", user.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": string(StatusApproved)})
}

func (h *Handler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	dto := h.decision(r)

	if err := h.Service.Reject(r.Context(), requestID, user.ID, dto.Comments); err != nil {
		h.Logger.Error("RejectRequest: service error", "error", err, "request_id", requestID, "approver_id", user.ID)

		switch {
		case errors.Is(err, ErrRequestNotFound):
			h.WriteError(w, http.StatusNotFound, "leave request not found")
		case errors.Is(err, ErrInvalidRequestStatus):
			h.WriteError(w, http.StatusBadRequest, "request cannot be rejected in current status")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to reject leave request")
		}
		return
	}

	h.Logger.Info("RejectRequest: leave request rejected", "request_id", requestID, "approver_id", user.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": string(StatusRejected)})
}

// Dashboard returns the current-year balances and recent requests for
// the logged-in employee.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	resp, err := h.Service.Dashboard(user.ID)
	if err != nil {
		h.Logger.Error("Dashboard: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) pagination(r *http.Request) (int, int) {
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
	return limit, offset
}

// decision tolerates an empty body: approval comments are optional.
func (h *Handler) decision(r *http.Request) DecisionDTO {
	var dto DecisionDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&dto)
	}
	return dto
}
