package document

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/transport"
	"github.com/geocasagroup/portal/pkg/logger"
)

type ServiceAPI interface {
	ListByOffice(ctx context.Context, actor Actor, officeID string) ([]*Document, error)
	Create(ctx context.Context, actor Actor, dto *CreateDocumentDTO) (*Document, error)
	GetByID(ctx context.Context, actor Actor, documentID int64) (*Document, error)
	Validate(ctx context.Context, actor Actor, documentID int64) (*Document, error)
	Assign(ctx context.Context, actor Actor, documentID, assigneeID int64) (*Document, error)
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

func (h *Handler) actor(r *http.Request) (Actor, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		return Actor{}, false
	}
	return Actor{ID: u.ID, IsAdmin: u.IsAdmin}, true
}

// ListByOffice handles GET /offices/{officeID}/documents
func (h *Handler) ListByOffice(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	docs, err := h.Service.ListByOffice(r.Context(), actor, chi.URLParam(r, "officeID"))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"documents": docs,
		"total":     len(docs),
	})
}

// Create handles POST /documents
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateDocumentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.Service.Create(r.Context(), actor, &dto)
	if err != nil {
		h.Logger.Error("document creation failed", "office_id", dto.OfficeID, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, doc)
}

// Get handles GET /documents/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := h.Service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, doc)
}

// Validate handles PATCH /documents/{id}/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	doc, err := h.Service.Validate(r.Context(), actor, id)
	if err != nil {
		h.Logger.Error("document validation failed", "document_id", id, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, doc)
}

// Assign handles PATCH /documents/{id}/assign
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid document id")
		return
	}

	var dto AssignDocumentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	doc, err := h.Service.Assign(r.Context(), actor, id, dto.AssigneeID)
	if err != nil {
		h.Logger.Error("document assignment failed", "document_id", id, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, doc)
}
