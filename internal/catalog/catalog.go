package catalog

// LocalizedText carries the bilingual display strings the portal renders.
type LocalizedText struct {
	En string `json:"en"`
	Fr string `json:"fr"`
}

// In returns the text for a language code, defaulting to French.
func (t LocalizedText) In(lang string) string {
	if lang == "en" {
		return t.En
	}
	return t.Fr
}

// Department is a top-level organizational unit. Immutable reference data:
// never mutated by a session, only referenced.
type Department struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	Color       string        `json:"color"`
	Icon        string        `json:"icon"`
	Services    []string      `json:"services"`
}

// Division is a support unit owning an ordered list of Offices.
type Division struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	Offices     []Office      `json:"offices"`
}

// Office is the leaf unit under a Division, the terminal destination of
// navigation.
type Office struct {
	ID          string        `json:"id"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	DivisionID  string        `json:"division_id"`
}

const (
	// LandCadastralDepartmentID is the distinguished department that may
	// route through the land-cadastral office chooser instead of the
	// generic department detail.
	LandCadastralDepartmentID = "land-cadastral"

	// The two legal land-office sub-dashboards. Any other value is a no-op.
	LandOfficeLandTitle       = "land-title"
	LandOfficeCadastralSurvey = "cadastral-survey"
)

// IsLandOffice reports whether v names one of the two land-office
// sub-dashboards.
func IsLandOffice(v string) bool {
	return v == LandOfficeLandTitle || v == LandOfficeCadastralSurvey
}

// Departments returns the full ordered reference catalog.
func Departments() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// Divisions returns the full ordered reference catalog.
func Divisions() []Division {
	out := make([]Division, len(divisions))
	copy(out, divisions)
	return out
}

// DepartmentByID looks up a department. ok is false for unknown ids; callers
// rendering department detail fall back to DefaultDepartment instead of
// erroring.
func DepartmentByID(id string) (Department, bool) {
	for _, d := range departments {
		if d.ID == id {
			return d, true
		}
	}
	return Department{}, false
}

// DepartmentOrDefault resolves id, substituting the default department-detail
// content for unknown ids.
func DepartmentOrDefault(id string) Department {
	if d, ok := DepartmentByID(id); ok {
		return d
	}
	return defaultDepartment
}

func DivisionByID(id string) (Division, bool) {
	for _, d := range divisions {
		if d.ID == id {
			return d, true
		}
	}
	return Division{}, false
}

// OfficeByID searches every division's offices.
func OfficeByID(id string) (Office, bool) {
	for _, d := range divisions {
		for _, o := range d.Offices {
			if o.ID == id {
				return o, true
			}
		}
	}
	return Office{}, false
}
