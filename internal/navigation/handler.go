package navigation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/transport"
	"github.com/geocasagroup/portal/pkg/logger"
)

type ServiceAPI interface {
	CurrentView(ctx context.Context, userID string) (View, error)
	State(userID string) State
	SelectDepartment(ctx context.Context, userID, departmentID string, viaChooser bool) (View, error)
	SelectDivision(ctx context.Context, userID, divisionID string) (View, error)
	SelectOffice(ctx context.Context, userID, officeID string) (View, error)
	OpenLandOffice(ctx context.Context, userID, landOffice string) (View, error)
	Back(ctx context.Context, userID string) (View, error)
	BackToSelector(ctx context.Context, userID string) (View, error)
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

type viewResponse struct {
	View  View  `json:"view"`
	State State `json:"state"`
}

func (h *Handler) userID(r *http.Request) (string, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok || u == nil {
		return "", false
	}
	return strconv.FormatInt(u.ID, 10), true
}

func (h *Handler) respond(w http.ResponseWriter, userID string, view View, err error) {
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, viewResponse{View: view, State: h.Service.State(userID)})
}

// CurrentView handles GET /navigation/view
func (h *Handler) CurrentView(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.Service.CurrentView(r.Context(), uid)
	h.respond(w, uid, view, err)
}

type selectDepartmentDTO struct {
	DepartmentID string `json:"department_id"`
	ViaChooser   bool   `json:"via_chooser,omitempty"`
}

// SelectDepartment handles POST /navigation/department
func (h *Handler) SelectDepartment(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto selectDepartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.SelectDepartment(r.Context(), uid, dto.DepartmentID, dto.ViaChooser)
	h.respond(w, uid, view, err)
}

type selectDivisionDTO struct {
	DivisionID string `json:"division_id"`
}

// SelectDivision handles POST /navigation/division
func (h *Handler) SelectDivision(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto selectDivisionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.SelectDivision(r.Context(), uid, dto.DivisionID)
	h.respond(w, uid, view, err)
}

type selectOfficeDTO struct {
	OfficeID string `json:"office_id"`
}

// SelectOffice handles POST /navigation/office
func (h *Handler) SelectOffice(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto selectOfficeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.SelectOffice(r.Context(), uid, dto.OfficeID)
	h.respond(w, uid, view, err)
}

type landOfficeDTO struct {
	LandOffice string `json:"land_office"`
}

// OpenLandOffice handles POST /navigation/land-office
func (h *Handler) OpenLandOffice(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto landOfficeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.Service.OpenLandOffice(r.Context(), uid, dto.LandOffice)
	h.respond(w, uid, view, err)
}

// Back handles POST /navigation/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.Service.Back(r.Context(), uid)
	h.respond(w, uid, view, err)
}

// BackToSelector handles POST /navigation/selector
func (h *Handler) BackToSelector(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.userID(r)
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.Service.BackToSelector(r.Context(), uid)
	h.respond(w, uid, view, err)
}
