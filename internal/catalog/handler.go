package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/transport"
	"github.com/geocasagroup/portal/pkg/logger"
)

// Handler serves the reference catalog. The data is static and bilingual;
// clients pick the language client-side.
type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{BaseHandler: transport.NewBaseHandler(lg)}
}

// ListDepartments handles GET /catalog/departments
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"departments": Departments(),
	})
}

// GetDepartment handles GET /catalog/departments/{id}. Unknown ids resolve to
// the default department content instead of a 404, the same fallback the view
// resolver applies.
func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"department": DepartmentOrDefault(chi.URLParam(r, "id")),
	})
}

// ListDivisions handles GET /catalog/divisions
func (h *Handler) ListDivisions(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"divisions": Divisions(),
	})
}

// GetDivision handles GET /catalog/divisions/{id}. Divisions have no default
// fallback; an unknown id is a plain not-found.
func (h *Handler) GetDivision(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	division, ok := DivisionByID(id)
	if !ok {
		h.WriteAppError(w, internal.NewNotFoundError("unknown division: "+id, internal.ErrCodeDivisionNotFound))
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"division": division,
	})
}
