package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/session"
	"github.com/geocasagroup/portal/internal/transport"
	"github.com/geocasagroup/portal/pkg/logger"
)

// SessionAPI is the session-store surface the login/logout handlers drive.
type SessionAPI interface {
	Login(ctx context.Context, loginInput, password string) (*session.Identity, error)
	Logout(ctx context.Context, userID string) error
}

// NavigationAPI lets logout drop the in-memory navigation flags.
type NavigationAPI interface {
	Forget(userID string)
}

type Handler struct {
	*transport.BaseHandler
	Service    ServiceAPI
	Sessions   SessionAPI
	Navigation NavigationAPI
}

func NewHandler(svc ServiceAPI, sessions SessionAPI, nav NavigationAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Sessions:    sessions,
		Navigation:  nav,
	}
}

// LoginResponse carries both the tokens and the freshly built Identity so the
// client can render the selector without a second round trip.
type LoginResponse struct {
	Tokens   AuthTokens        `json:"tokens"`
	Identity *session.Identity `json:"identity"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	identity, err := h.Sessions.Login(r.Context(), dto.Email, dto.Password)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	tokens, err := h.Service.IssueTokens(identity.ID, identity.Email)
	if err != nil {
		h.Logger.Error("token issuance failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{Tokens: tokens, Identity: identity})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)

		switch {
		case errors.Is(err, internal.ErrInvalidToken), errors.Is(err, internal.ErrTokenExpired):
			h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		default:
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout clears the persisted session and the navigation flags. Idempotent:
// an already-cleared session still yields 204.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	claims, err := h.Service.ValidateAccessToken(token)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	if err := h.Sessions.Logout(r.Context(), claims.UserID); err != nil {
		h.Logger.Error("logout failed", "user_id", claims.UserID, "error", err)
		h.WriteAppError(w, err)
		return
	}
	if h.Navigation != nil {
		h.Navigation.Forget(claims.UserID)
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware validates the bearer token and attaches the user to the
// request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		uid, err := ParseUserID(claims)
		if err != nil {
			h.Logger.Warn("failed to parse user id from token claims", "value", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		// The admin flag drives capability bypass, so the context user comes
		// from the store, not from claims.
		u, err := h.Service.GetUser(r.Context(), uid)
		if err != nil {
			h.Logger.Warn("failed to load user for token", "user_id", uid, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := internal.ContextWithUser(r.Context(), &internal.AuthUser{
			ID:      u.ID,
			Email:   u.Email,
			Name:    u.Name,
			IsAdmin: u.IsAdmin,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
