package assignment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/geocasagroup/portal/internal"
	grantDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/grant"
	"github.com/geocasagroup/portal/internal/core/events"
)

// AccessLevelEditor is the fixed access level stamped on every office grant
// created through personnel registration.
const AccessLevelEditor = "Editor"

type RepositoryAPI interface {
	InsertDepartmentGrants(ctx context.Context, rows []grantDatamodel.DepartmentGrant) error
	InsertDivisionGrants(ctx context.Context, rows []grantDatamodel.DivisionGrant) error
	InsertOfficeGrants(ctx context.Context, rows []grantDatamodel.OfficeGrant) error
}

// UserResolver maps a registrant's email to the system-user id grant rows
// are keyed by.
type UserResolver interface {
	ResolveSystemUserID(ctx context.Context, email string) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   RepositoryAPI
	users  UserResolver
	bus    EventPublisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, users UserResolver, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bus:    bus,
		logger: logger,
	}
}

// SubmitResult reports what was written. FailedSteps is non-empty when some
// grant categories could not be inserted; earlier successful inserts are not
// rolled back.
type SubmitResult struct {
	SystemUserID int64    `json:"system_user_id"`
	Departments  int      `json:"departments"`
	Divisions    int      `json:"divisions"`
	Offices      int      `json:"offices"`
	FailedSteps  []string `json:"failed_steps,omitempty"`
}

// Submit validates the set, resolves the registrant's system-user id and
// writes the grant rows category by category. A failed id lookup aborts the
// whole submission before anything is written. Grant insertion stays
// best-effort: a failure partway through is logged and reported per step,
// never rolled back.
func (s *Service) Submit(ctx context.Context, registrantEmail, jobTitle string, set *Set) (*SubmitResult, error) {
	if err := set.ValidateForSubmit(); err != nil {
		return nil, err
	}

	userID, err := s.users.ResolveSystemUserID(ctx, registrantEmail)
	if err != nil {
		s.logger.Error("system user lookup failed, aborting grant submission",
			"email", registrantEmail, "error", err)
		return nil, internal.NewBackendError("failed to resolve system user", internal.ErrCodeUserLookupFailed, err)
	}

	result := &SubmitResult{SystemUserID: userID}

	if rows := departmentRows(userID, set.Departments); len(rows) > 0 {
		if err := s.repo.InsertDepartmentGrants(ctx, rows); err != nil {
			s.logger.Error("department grant insertion failed", "user_id", userID, "error", err)
			result.FailedSteps = append(result.FailedSteps, string(KindDepartment))
		} else {
			result.Departments = len(rows)
		}
	}

	if rows := divisionRows(userID, set.Divisions); len(rows) > 0 {
		if err := s.repo.InsertDivisionGrants(ctx, rows); err != nil {
			s.logger.Error("division grant insertion failed", "user_id", userID, "error", err)
			result.FailedSteps = append(result.FailedSteps, string(KindDivision))
		} else {
			result.Divisions = len(rows)
		}
	}

	if rows := officeRows(userID, jobTitle, set.Offices); len(rows) > 0 {
		if err := s.repo.InsertOfficeGrants(ctx, rows); err != nil {
			s.logger.Error("office grant insertion failed", "user_id", userID, "error", err)
			result.FailedSteps = append(result.FailedSteps, string(KindOffice))
		} else {
			result.Offices = len(rows)
		}
	}

	if s.bus != nil {
		event := events.NewGrantsSubmittedEvent(userID, result.Departments, result.Divisions, result.Offices, result.FailedSteps)
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish grants event", "error", err)
		}
	}

	if len(result.FailedSteps) > 0 {
		return result, internal.NewBackendError(
			"grant insertion failed for: "+strings.Join(result.FailedSteps, ", "),
			internal.ErrCodeGrantInsertFailed, nil).WithDetails(result)
	}
	return result, nil
}

func departmentRows(userID int64, c *Collection) []grantDatamodel.DepartmentGrant {
	entries := c.Entries()
	rows := make([]grantDatamodel.DepartmentGrant, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, grantDatamodel.DepartmentGrant{
			UserID:       userID,
			DepartmentID: e.ID,
			Name:         e.Name,
			IsPrimary:    e.IsPrimary,
		})
	}
	return rows
}

func divisionRows(userID int64, c *Collection) []grantDatamodel.DivisionGrant {
	entries := c.Entries()
	rows := make([]grantDatamodel.DivisionGrant, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, grantDatamodel.DivisionGrant{
			UserID:     userID,
			DivisionID: e.ID,
			Name:       e.Name,
			IsPrimary:  e.IsPrimary,
		})
	}
	return rows
}

// officeRows applies the fixed role template: role = the person's job title,
// Editor access, document view/create allowed, validate/assign withheld.
func officeRows(userID int64, jobTitle string, c *Collection) []grantDatamodel.OfficeGrant {
	entries := c.Entries()
	rows := make([]grantDatamodel.OfficeGrant, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, grantDatamodel.OfficeGrant{
			UserID:             userID,
			OfficeID:           e.ID,
			DivisionID:         e.DivisionID,
			Name:               e.Name,
			IsPrimary:          e.IsPrimary,
			Role:               jobTitle,
			AccessLevel:        AccessLevelEditor,
			CanViewDocuments:   true,
			CanCreateDocuments: true,
			CanValidate:        false,
			CanAssign:          false,
		})
	}
	return rows
}
