package grant

import "time"

// Grant rows are the persisted form of an Assignment Set: join-table records
// keyed by the resolved system-user id.

type DepartmentGrant struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	DepartmentID string    `gorm:"column:department_id;not null"`
	Name         string    `gorm:"column:name;not null"`
	IsPrimary    bool      `gorm:"column:is_primary;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

func (DepartmentGrant) TableName() string {
	return "department_grants"
}

type DivisionGrant struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     int64     `gorm:"column:user_id;not null;index"`
	DivisionID string    `gorm:"column:division_id;not null"`
	Name       string    `gorm:"column:name;not null"`
	IsPrimary  bool      `gorm:"column:is_primary;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;default:now()"`
}

func (DivisionGrant) TableName() string {
	return "division_grants"
}

// OfficeGrant additionally carries the fixed role/access-level template
// applied at submission time.
type OfficeGrant struct {
	ID                 int64     `gorm:"primaryKey"`
	UserID             int64     `gorm:"column:user_id;not null;index"`
	OfficeID           string    `gorm:"column:office_id;not null"`
	DivisionID         *string   `gorm:"column:division_id"`
	Name               string    `gorm:"column:name;not null"`
	IsPrimary          bool      `gorm:"column:is_primary;default:false"`
	Role               string    `gorm:"column:role"`
	AccessLevel        string    `gorm:"column:access_level;default:Editor"`
	CanViewDocuments   bool      `gorm:"column:can_view_documents;default:true"`
	CanCreateDocuments bool      `gorm:"column:can_create_documents;default:true"`
	CanValidate        bool      `gorm:"column:can_validate;default:false"`
	CanAssign          bool      `gorm:"column:can_assign;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at;default:now()"`
}

func (OfficeGrant) TableName() string {
	return "office_grants"
}
