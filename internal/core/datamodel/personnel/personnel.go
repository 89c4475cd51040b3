package personnel

import "time"

type Personnel struct {
	ID           int64     `gorm:"primaryKey"`
	FirstName    string    `gorm:"column:first_name;not null"`
	LastName     string    `gorm:"column:last_name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Phone        string    `gorm:"column:phone"`
	JobTitle     string    `gorm:"column:job_title"`
	Language     string    `gorm:"column:language;default:fr"`
	SystemUserID *int64    `gorm:"column:system_user_id"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (Personnel) TableName() string {
	return "personnel"
}
