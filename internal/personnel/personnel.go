package personnel

import (
	"time"

	personnelDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/personnel"
)

// Personnel is the domain shape of a registered staff member. SystemUserID is
// filled in once grant submission has resolved the backing account.
type Personnel struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	JobTitle     string    `json:"job_title"`
	Language     string    `json:"language"`
	SystemUserID *int64    `json:"system_user_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Personnel) FullName() string {
	return p.FirstName + " " + p.LastName
}

func FromDataModel(m *personnelDatamodel.Personnel) *Personnel {
	return &Personnel{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		JobTitle:     m.JobTitle,
		Language:     m.Language,
		SystemUserID: m.SystemUserID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToDataModel(p *Personnel) *personnelDatamodel.Personnel {
	return &personnelDatamodel.Personnel{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Email:        p.Email,
		Phone:        p.Phone,
		JobTitle:     p.JobTitle,
		Language:     p.Language,
		SystemUserID: p.SystemUserID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
