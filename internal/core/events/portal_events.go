package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// EventPersonnelRegistered fires after a personnel record is created and
	// its assignment set submitted.
	EventPersonnelRegistered = "personnel.registered"

	// EventGrantsSubmitted fires after grant insertion, including partial
	// failures: the payload carries the failed steps so the audit trail
	// records what was not written.
	EventGrantsSubmitted = "assignment.grants_submitted"
)

func NewPersonnelRegisteredEvent(personnelID int64, email string, systemUserID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventPersonnelRegistered,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"personnel_id":   personnelID,
			"email":          email,
			"system_user_id": systemUserID,
		},
	}
}

func NewGrantsSubmittedEvent(systemUserID int64, departments, divisions, offices int, failedSteps []string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      EventGrantsSubmitted,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"system_user_id": systemUserID,
			"departments":    departments,
			"divisions":      divisions,
			"offices":        offices,
			"failed_steps":   failedSteps,
		},
	}
}
