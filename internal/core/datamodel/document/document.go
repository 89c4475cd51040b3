package document

import "time"

type Document struct {
	ID          int64      `gorm:"primaryKey"`
	Title       string     `gorm:"column:title;not null"`
	Reference   string     `gorm:"column:reference;uniqueIndex;not null"`
	OfficeID    string     `gorm:"column:office_id;not null;index"`
	Status      string     `gorm:"column:status;default:open"`
	AssignedTo  *int64     `gorm:"column:assigned_to"`
	CreatedBy   int64      `gorm:"column:created_by;not null"`
	ValidatedBy *int64     `gorm:"column:validated_by"`
	ValidatedAt *time.Time `gorm:"column:validated_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Document) TableName() string {
	return "documents"
}
