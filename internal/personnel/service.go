package personnel

import (
	"context"
	"log/slog"
	"sync"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/assignment"
	"github.com/geocasagroup/portal/internal/catalog"
	personnelDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/personnel"
	"github.com/geocasagroup/portal/internal/core/events"
)

type RepositoryAPI interface {
	Create(ctx context.Context, p *personnelDatamodel.Personnel) error
	GetByID(ctx context.Context, id int64) (*personnelDatamodel.Personnel, error)
	GetByEmail(ctx context.Context, email string) (*personnelDatamodel.Personnel, error)
	List(ctx context.Context) ([]personnelDatamodel.Personnel, error)
	SetSystemUserID(ctx context.Context, id, systemUserID int64) error
}

// AssignmentAPI submits the grant set built from the registration form.
type AssignmentAPI interface {
	Submit(ctx context.Context, registrantEmail, jobTitle string, set *assignment.Set) (*assignment.SubmitResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo        RepositoryAPI
	assignments AssignmentAPI
	bus         EventPublisher
	logger      *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewService(repo RepositoryAPI, assignments AssignmentAPI, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		assignments: assignments,
		bus:         bus,
		logger:      logger,
		inFlight:    make(map[string]struct{}),
	}
}

// RegisterResult is what a completed registration reports. Grants carries the
// per-step outcome of grant submission, including any failed steps.
type RegisterResult struct {
	Personnel *Personnel               `json:"personnel"`
	Grants    *assignment.SubmitResult `json:"grants,omitempty"`
}

// Register creates the personnel record and submits the assignment set in one
// workflow. A second registration for the same email while the first is still
// running is rejected instead of queued. Grant insertion failures after the
// record is created do not delete the record; they are reported in the result.
func (s *Service) Register(ctx context.Context, dto *RegisterPersonnelDTO) (*RegisterResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if !s.begin(dto.Email) {
		return nil, internal.ErrSubmitInFlight
	}
	defer s.end(dto.Email)

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, internal.NewBackendError("failed to check existing personnel", internal.ErrCodeBackendFailure, err)
	}
	if existing != nil {
		return nil, internal.NewConflictError("personnel with this email already exists", internal.ErrCodeDuplicateEntry)
	}

	lang := dto.Language
	if lang == "" {
		lang = "fr"
	}

	record := &personnelDatamodel.Personnel{
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		JobTitle:  dto.JobTitle,
		Language:  lang,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, internal.NewBackendError("failed to create personnel record", internal.ErrCodeBackendFailure, err)
	}

	set := buildSet(dto, lang)

	grants, submitErr := s.assignments.Submit(ctx, dto.Email, dto.JobTitle, set)
	if submitErr != nil && grants == nil {
		// Nothing was written. The personnel record stays; the caller can
		// retry the submission once the backend recovers.
		s.logger.Error("grant submission failed entirely",
			"personnel_id", record.ID, "email", dto.Email, "error", submitErr)
		return nil, submitErr
	}
	if submitErr != nil {
		s.logger.Warn("grant submission partially failed",
			"personnel_id", record.ID, "failed_steps", grants.FailedSteps)
	}

	if grants != nil && grants.SystemUserID != 0 {
		if err := s.repo.SetSystemUserID(ctx, record.ID, grants.SystemUserID); err != nil {
			s.logger.Error("failed to link personnel to system user",
				"personnel_id", record.ID, "system_user_id", grants.SystemUserID, "error", err)
		} else {
			record.SystemUserID = &grants.SystemUserID
		}
	}

	if s.bus != nil && grants != nil {
		event := events.NewPersonnelRegisteredEvent(record.ID, record.Email, grants.SystemUserID)
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish personnel event", "error", err)
		}
	}

	return &RegisterResult{
		Personnel: FromDataModel(record),
		Grants:    grants,
	}, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Personnel, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, internal.NewBackendError("failed to read personnel", internal.ErrCodeBackendFailure, err)
	}
	if m == nil {
		return nil, internal.ErrPersonnelNotFound
	}
	return FromDataModel(m), nil
}

func (s *Service) List(ctx context.Context) ([]*Personnel, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, internal.NewBackendError("failed to list personnel", internal.ErrCodeBackendFailure, err)
	}
	out := make([]*Personnel, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) begin(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[email]; busy {
		return false
	}
	s.inFlight[email] = struct{}{}
	return true
}

func (s *Service) end(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, email)
}

// buildSet turns the form payload into an assignment Set, preserving the
// collection invariants: the first entry of each category becomes primary
// automatically, then explicit is_primary picks override it.
func buildSet(dto *RegisterPersonnelDTO, lang string) *assignment.Set {
	set := assignment.NewSet()

	for _, e := range dto.Departments {
		if d, ok := catalog.DepartmentByID(e.ID); ok {
			set.Departments.Add(d.ID, d.Name.In(lang))
		}
	}
	for _, e := range dto.Departments {
		if e.IsPrimary {
			set.Departments.SetPrimary(e.ID)
		}
	}

	for _, e := range dto.Divisions {
		if d, ok := catalog.DivisionByID(e.ID); ok {
			set.Divisions.Add(d.ID, d.Name.In(lang))
		}
	}
	for _, e := range dto.Divisions {
		if e.IsPrimary {
			set.Divisions.SetPrimary(e.ID)
		}
	}

	for _, e := range dto.Offices {
		if o, ok := catalog.OfficeByID(e.ID); ok {
			divisionID := e.DivisionID
			if divisionID == nil {
				owner := o.DivisionID
				divisionID = &owner
			}
			set.Offices.AddWithDivision(o.ID, o.Name.In(lang), divisionID)
		}
	}
	for _, e := range dto.Offices {
		if e.IsPrimary {
			set.Offices.SetPrimary(e.ID)
		}
	}

	return set
}
