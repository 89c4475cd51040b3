package personnel

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/geocasagroup/portal/internal/transport"
	"github.com/geocasagroup/portal/pkg/i18n"
	"github.com/geocasagroup/portal/pkg/logger"
)

type ServiceAPI interface {
	Register(ctx context.Context, dto *RegisterPersonnelDTO) (*RegisterResult, error)
	GetByID(ctx context.Context, id int64) (*Personnel, error)
	List(ctx context.Context) ([]*Personnel, error)
}

type Handler struct {
	*transport.BaseHandler
	Service    ServiceAPI
	Translator *i18n.Translator
}

func NewHandler(svc ServiceAPI, translator *i18n.Translator) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Translator:  translator,
	}
}

type registerResponse struct {
	*RegisterResult
	Message string `json:"message"`
}

// Register handles POST /personnel
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterPersonnelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Register(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("personnel registration failed", "email", dto.Email, "error", err)
		h.WriteAppError(w, err)
		return
	}

	msgKey := "personnel.registered"
	if result.Grants != nil && len(result.Grants.FailedSteps) > 0 {
		msgKey = "personnel.submit_failed"
	}

	h.WriteJSON(w, http.StatusCreated, registerResponse{
		RegisterResult: result,
		Message:        h.Translator.T(result.Personnel.Language, msgKey),
	})
}

// Get handles GET /personnel/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid personnel id")
		return
	}

	p, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

// List handles GET /personnel
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("failed to list personnel", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"personnel": rows,
		"total":     len(rows),
	})
}
