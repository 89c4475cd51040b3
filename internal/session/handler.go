package session

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/transport"
	"github.com/geocasagroup/portal/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) userID(r *http.Request) (string, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		return "", false
	}
	return strconv.FormatInt(u.ID, 10), true
}

// Current handles GET /session: the persisted identity, selection included.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	identity, err := h.Service.CheckAuthState(r.Context(), uid)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}

// ResetSelection handles DELETE /session/selection. The identity survives;
// only the selection fields are cleared.
func (h *Handler) ResetSelection(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	identity, err := h.Service.ResetSelection(r.Context(), uid)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, identity)
}
