package document

import (
	"time"

	documentDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/document"
)

// Document statuses. A document opens, optionally gets assigned, and is
// closed by validation.
const (
	StatusOpen      = "open"
	StatusAssigned  = "assigned"
	StatusValidated = "validated"
)

type Document struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Reference   string     `json:"reference"`
	OfficeID    string     `json:"office_id"`
	Status      string     `json:"status"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	CreatedBy   int64      `json:"created_by"`
	ValidatedBy *int64     `json:"validated_by,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromDataModel(m *documentDatamodel.Document) *Document {
	return &Document{
		ID:          m.ID,
		Title:       m.Title,
		Reference:   m.Reference,
		OfficeID:    m.OfficeID,
		Status:      m.Status,
		AssignedTo:  m.AssignedTo,
		CreatedBy:   m.CreatedBy,
		ValidatedBy: m.ValidatedBy,
		ValidatedAt: m.ValidatedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
