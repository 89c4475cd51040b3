package audit

import "time"

// Entry records portal events (registrations, grant submissions) for the
// office dashboards' activity feed.
type Entry struct {
	ID        int64     `gorm:"primaryKey"`
	EventID   string    `gorm:"column:event_id;uniqueIndex;not null"`
	EventType string    `gorm:"column:event_type;not null;index"`
	ActorID   *int64    `gorm:"column:actor_id"`
	Payload   string    `gorm:"column:payload"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Entry) TableName() string {
	return "audit_log"
}
