package document

import (
	"strings"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/catalog"
)

type CreateDocumentDTO struct {
	Title     string `json:"title"`
	Reference string `json:"reference"`
	OfficeID  string `json:"office_id"`
}

func (d *CreateDocumentDTO) Validate() error {
	var errs []internal.ValidationError

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, internal.ValidationError{Field: "title", Message: "title is required", Code: string(internal.ErrCodeMissingField)})
	}
	if strings.TrimSpace(d.Reference) == "" {
		errs = append(errs, internal.ValidationError{Field: "reference", Message: "reference is required", Code: string(internal.ErrCodeMissingField)})
	}
	if strings.TrimSpace(d.OfficeID) == "" {
		errs = append(errs, internal.ValidationError{Field: "office_id", Message: "office id is required", Code: string(internal.ErrCodeMissingField)})
	} else if _, ok := catalog.OfficeByID(d.OfficeID); !ok {
		errs = append(errs, internal.ValidationError{Field: "office_id", Message: "unknown office: " + d.OfficeID, Code: string(internal.ErrCodeOfficeNotFound)})
	}

	if len(errs) > 0 {
		return internal.NewValidationError("validation failed", internal.ErrCodeValidationFailed).
			WithDetails(internal.ValidationErrors{Errors: errs})
	}
	return nil
}

type AssignDocumentDTO struct {
	AssigneeID int64 `json:"assignee_id"`
}

func (d *AssignDocumentDTO) Validate() error {
	if d.AssigneeID <= 0 {
		return internal.NewValidationFieldError("assignee_id", "assignee id is required", internal.ErrCodeMissingField)
	}
	return nil
}
