package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/leave-management/internal/transport"
	"github.com/frahmantamala/leave-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service    *Service
	CookieName string
}

func NewHandler(svc *Service, cookieName string) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	if cookieName == "" {
		cookieName = "session_token"
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		CookieName:  cookieName,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Login(r.Context(), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.Logger.Error("login failed", "error", err)
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(h.Service.SessionTimeout().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.sessionToken(r)
	user, ok := UserFromContext(r.Context())

	if token != "" && ok {
		if err := h.Service.Logout(r.Context(), token, user.ID); err != nil {
			h.Logger.Error("logout failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	h.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(user.ID, dto); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "current password is incorrect")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var dto ResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ResetPassword(dto); err != nil {
		switch {
		case errors.Is(err, ErrInvalidResetToken):
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired reset token")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// IssueResetToken mints a password reset token for the employee in the
// path. The token is returned to the admin, not mailed anywhere.
func (h *Handler) IssueResetToken(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	token, err := h.Service.IssueResetToken(userID)
	if err != nil {
		if errors.Is(err, ErrUserInactive) {
			h.WriteError(w, http.StatusNotFound, "employee not found or inactive")
			return
		}
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ResetTokenResponse{ResetToken: token})
}

// sessionToken extracts the token from the session cookie, falling back
// to a bearer Authorization header for non-browser clients.
func (h *Handler) sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(h.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionMiddleware resolves the session token into a user and puts it
// on the request context. Requests without a valid session are rejected.
func (h *Handler) SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.sessionToken(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := h.Service.VerifySession(token)
		if err != nil {
			switch {
			case errors.Is(err, ErrSessionExpired):
				h.WriteError(w, http.StatusUnauthorized, "session expired")
			default:
				h.WriteError(w, http.StatusUnauthorized, "authentication required")
			}
			return
		}

		ctx := ContextWithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates routes to admin users.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin() {
			h.WriteError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManager gates routes to managers and admins.
func (h *Handler) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsManager() {
			h.WriteError(w, http.StatusForbidden, "manager access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
