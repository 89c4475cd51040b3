package session

import (
	"github.com/geocasagroup/portal/internal/catalog"
)

// AdminEmail is the distinguished administrator account. It always receives
// the full reference catalog regardless of persisted grants.
const AdminEmail = "admin@geocasagroup.com"

// Identity is the authenticated session record, including the current
// navigation selection. It is serialized as a single JSON blob at exactly one
// boundary: the session Store.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	Departments []catalog.Department `json:"departments"`
	Divisions   []catalog.Division   `json:"divisions"`

	CurrentDepartment *catalog.Department `json:"current_department,omitempty"`
	CurrentDivision   *catalog.Division   `json:"current_division,omitempty"`
	CurrentOffice     *string             `json:"current_office,omitempty"`
}

// SelectDepartment sets the current department and clears the narrower
// selections: a department change invalidates any division or office choice.
func (i *Identity) SelectDepartment(d catalog.Department) {
	i.CurrentDepartment = &d
	i.CurrentDivision = nil
	i.CurrentOffice = nil
}

// SelectDivision sets the current division and clears the office selection.
func (i *Identity) SelectDivision(d catalog.Division) {
	i.CurrentDivision = &d
	i.CurrentOffice = nil
}

func (i *Identity) SelectOffice(officeID string) {
	i.CurrentOffice = &officeID
}

// ResetSelection clears only the selection fields. The identity itself and
// its accessible catalog stay intact; this is what sends the user back to the
// selector screen without re-authenticating.
func (i *Identity) ResetSelection() {
	i.CurrentDepartment = nil
	i.CurrentDivision = nil
	i.CurrentOffice = nil
}
