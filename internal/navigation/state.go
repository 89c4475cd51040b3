package navigation

import (
	"github.com/geocasagroup/portal/internal/catalog"
	"github.com/geocasagroup/portal/internal/session"
)

// State holds the navigation flags. They are deliberately independent: the
// resolver, not the mutators, decides which one wins.
type State struct {
	// SelectedLandOffice names one of the two land-office sub-dashboards.
	// Values other than the two known ones are ignored by the resolver.
	SelectedLandOffice string `json:"selected_land_office,omitempty"`

	// ShowLandCadastralOffices renders the land-cadastral office chooser.
	ShowLandCadastralOffices bool `json:"show_land_cadastral_offices,omitempty"`

	// ShowDepartmentDetail holds a department id; unknown ids resolve to the
	// default department-detail content rather than an error.
	ShowDepartmentDetail string `json:"show_department_detail,omitempty"`

	// ShowDivisionDetail holds a division id.
	ShowDivisionDetail string `json:"show_division_detail,omitempty"`

	// SelectedOffice holds an office id and requires an identity to render.
	SelectedOffice string `json:"selected_office,omitempty"`
}

type ViewKind string

const (
	ViewLogin                    ViewKind = "login"
	ViewSelector                 ViewKind = "selector"
	ViewDashboard                ViewKind = "dashboard"
	ViewOfficeDashboard          ViewKind = "office_dashboard"
	ViewDivisionDetail           ViewKind = "division_detail"
	ViewDepartmentDetail         ViewKind = "department_detail"
	ViewLandCadastralChooser     ViewKind = "land_cadastral_chooser"
	ViewLandTitleDashboard       ViewKind = "land_title_dashboard"
	ViewCadastralSurveyDashboard ViewKind = "cadastral_survey_dashboard"
)

// View is the resolved current screen: exactly one per state/identity
// combination.
type View struct {
	Kind     ViewKind `json:"kind"`
	TargetID string   `json:"target_id,omitempty"`
}

// Resolve picks the current view from the selection flags plus the identity.
// Priority is strict and evaluated top to bottom; the first matching flag
// wins and everything below it is irrelevant.
func Resolve(state State, identity *session.Identity) View {
	switch state.SelectedLandOffice {
	case catalog.LandOfficeLandTitle:
		return View{Kind: ViewLandTitleDashboard, TargetID: state.SelectedLandOffice}
	case catalog.LandOfficeCadastralSurvey:
		return View{Kind: ViewCadastralSurveyDashboard, TargetID: state.SelectedLandOffice}
	}
	// unknown land-office values fall through

	if state.ShowLandCadastralOffices {
		return View{Kind: ViewLandCadastralChooser}
	}

	if state.ShowDepartmentDetail != "" {
		return View{Kind: ViewDepartmentDetail, TargetID: catalog.DepartmentOrDefault(state.ShowDepartmentDetail).ID}
	}

	if state.ShowDivisionDetail != "" {
		return View{Kind: ViewDivisionDetail, TargetID: state.ShowDivisionDetail}
	}

	if state.SelectedOffice != "" && identity != nil {
		return View{Kind: ViewOfficeDashboard, TargetID: state.SelectedOffice}
	}

	if identity != nil && identity.CurrentDepartment != nil {
		return View{Kind: ViewDashboard, TargetID: identity.CurrentDepartment.ID}
	}

	if identity != nil {
		return View{Kind: ViewSelector}
	}

	return View{Kind: ViewLogin}
}
