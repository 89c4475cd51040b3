package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"gorm.io/gorm"

	auditDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/audit"
	"github.com/geocasagroup/portal/internal/core/events"
)

// Subscriber persists portal events into the audit log. Registered on the
// event bus at startup for every event type it should record.
type Subscriber struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewSubscriber(db *gorm.DB, logger *slog.Logger) *Subscriber {
	return &Subscriber{db: db, logger: logger}
}

// Register attaches the subscriber to the bus for the portal's event types.
func (s *Subscriber) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventPersonnelRegistered, s.Handle)
	bus.Subscribe(events.EventGrantsSubmitted, s.Handle)
}

// Handle writes one audit row per event. The event id is unique, so a
// replayed event fails the insert instead of duplicating the entry.
func (s *Subscriber) Handle(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}

	entry := auditDatamodel.Entry{
		EventID:   event.EventID(),
		EventType: event.EventType(),
		Payload:   string(payload),
		CreatedAt: event.OccurredAt(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Error("failed to write audit entry",
			"event_id", event.EventID(), "event_type", event.EventType(), "error", err)
		return err
	}
	return nil
}
