package personnel

import (
	"net/mail"
	"strings"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/catalog"
)

// AssignmentEntryDTO names one department or division picked on the
// registration form.
type AssignmentEntryDTO struct {
	ID        string `json:"id"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// OfficeEntryDTO additionally carries the owning division.
type OfficeEntryDTO struct {
	ID         string  `json:"id"`
	DivisionID *string `json:"division_id,omitempty"`
	IsPrimary  bool    `json:"is_primary,omitempty"`
}

type RegisterPersonnelDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	JobTitle  string `json:"job_title"`
	Language  string `json:"language"`

	Departments []AssignmentEntryDTO `json:"departments"`
	Divisions   []AssignmentEntryDTO `json:"divisions"`
	Offices     []OfficeEntryDTO     `json:"offices"`
}

// Validate checks required fields and the minimum-selection rule before any
// row is written. Catalog membership of the picked ids is checked here too so
// a typo fails the whole request instead of one grant step later.
func (d *RegisterPersonnelDTO) Validate() error {
	var errs []internal.ValidationError

	if strings.TrimSpace(d.FirstName) == "" {
		errs = append(errs, internal.ValidationError{Field: "first_name", Message: "first name is required", Code: string(internal.ErrCodeMissingField)})
	}
	if strings.TrimSpace(d.LastName) == "" {
		errs = append(errs, internal.ValidationError{Field: "last_name", Message: "last name is required", Code: string(internal.ErrCodeMissingField)})
	}
	if strings.TrimSpace(d.Email) == "" {
		errs = append(errs, internal.ValidationError{Field: "email", Message: "email is required", Code: string(internal.ErrCodeMissingField)})
	} else if _, err := mail.ParseAddress(d.Email); err != nil {
		errs = append(errs, internal.ValidationError{Field: "email", Message: "email is not valid", Code: string(internal.ErrCodeValidationFailed)})
	}
	if strings.TrimSpace(d.JobTitle) == "" {
		errs = append(errs, internal.ValidationError{Field: "job_title", Message: "job title is required", Code: string(internal.ErrCodeMissingField)})
	}
	if d.Language != "" && d.Language != "fr" && d.Language != "en" {
		errs = append(errs, internal.ValidationError{Field: "language", Message: "language must be fr or en", Code: string(internal.ErrCodeInvalidLanguage)})
	}

	if len(d.Divisions) == 0 && len(d.Offices) == 0 {
		errs = append(errs, internal.ValidationError{Field: "divisions", Message: "at least one division or office required", Code: string(internal.ErrCodeNoAssignment)})
	}

	for _, e := range d.Departments {
		if _, ok := catalog.DepartmentByID(e.ID); !ok {
			errs = append(errs, internal.ValidationError{Field: "departments", Message: "unknown department: " + e.ID, Code: string(internal.ErrCodeDepartmentNotFound)})
		}
	}
	for _, e := range d.Divisions {
		if _, ok := catalog.DivisionByID(e.ID); !ok {
			errs = append(errs, internal.ValidationError{Field: "divisions", Message: "unknown division: " + e.ID, Code: string(internal.ErrCodeDivisionNotFound)})
		}
	}
	for _, e := range d.Offices {
		if _, ok := catalog.OfficeByID(e.ID); !ok {
			errs = append(errs, internal.ValidationError{Field: "offices", Message: "unknown office: " + e.ID, Code: string(internal.ErrCodeOfficeNotFound)})
		}
	}

	if len(errs) > 0 {
		return internal.NewValidationError("validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: errs})
	}
	return nil
}
