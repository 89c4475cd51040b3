package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocasagroup/portal/internal"
	documentDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/document"
	grantDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/grant"
)

type RepositoryAPI interface {
	Create(ctx context.Context, d *documentDatamodel.Document) error
	GetByID(ctx context.Context, id int64) (*documentDatamodel.Document, error)
	ListByOffice(ctx context.Context, officeID string) ([]documentDatamodel.Document, error)
	Update(ctx context.Context, d *documentDatamodel.Document) error
}

// GrantReader answers what an actor may do inside one office. A nil grant
// means no access at all.
type GrantReader interface {
	OfficeGrantFor(ctx context.Context, userID int64, officeID string) (*grantDatamodel.OfficeGrant, error)
}

// Actor is whoever performs a document operation. Admins bypass the
// per-office capability checks.
type Actor struct {
	ID      int64
	IsAdmin bool
}

type capability int

const (
	capView capability = iota
	capCreate
	capValidate
	capAssign
)

type Service struct {
	repo   RepositoryAPI
	grants GrantReader
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, grants GrantReader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		grants: grants,
		logger: logger,
	}
}

// ListByOffice returns the office dashboard's document list. Requires the
// view capability.
func (s *Service) ListByOffice(ctx context.Context, actor Actor, officeID string) ([]*Document, error) {
	if err := s.authorize(ctx, actor, officeID, capView); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByOffice(ctx, officeID)
	if err != nil {
		return nil, internal.NewBackendError("failed to list documents", internal.ErrCodeBackendFailure, err)
	}
	out := make([]*Document, 0, len(rows))
	for i := range rows {
		out = append(out, FromDataModel(&rows[i]))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, actor Actor, dto *CreateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, dto.OfficeID, capCreate); err != nil {
		return nil, err
	}

	row := &documentDatamodel.Document{
		Title:     dto.Title,
		Reference: dto.Reference,
		OfficeID:  dto.OfficeID,
		Status:    StatusOpen,
		CreatedBy: actor.ID,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, internal.NewBackendError("failed to create document", internal.ErrCodeBackendFailure, err)
	}

	s.logger.Info("document created", "document_id", row.ID, "office_id", row.OfficeID, "created_by", actor.ID)
	return FromDataModel(row), nil
}

// Validate closes a document. Already-validated documents are rejected so a
// double click cannot re-stamp the validator.
func (s *Service) Validate(ctx context.Context, actor Actor, documentID int64) (*Document, error) {
	row, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, row.OfficeID, capValidate); err != nil {
		return nil, err
	}

	if row.Status == StatusValidated {
		return nil, internal.NewConflictError("document is already validated", internal.ErrCodeDuplicateEntry)
	}

	now := time.Now()
	row.Status = StatusValidated
	row.ValidatedBy = &actor.ID
	row.ValidatedAt = &now
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, internal.NewBackendError("failed to validate document", internal.ErrCodeBackendFailure, err)
	}

	s.logger.Info("document validated", "document_id", row.ID, "validated_by", actor.ID)
	return FromDataModel(row), nil
}

func (s *Service) Assign(ctx context.Context, actor Actor, documentID, assigneeID int64) (*Document, error) {
	row, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, row.OfficeID, capAssign); err != nil {
		return nil, err
	}

	if row.Status == StatusValidated {
		return nil, internal.NewConflictError("validated documents cannot be reassigned", internal.ErrCodeDuplicateEntry)
	}

	row.AssignedTo = &assigneeID
	row.Status = StatusAssigned
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, internal.NewBackendError("failed to assign document", internal.ErrCodeBackendFailure, err)
	}

	s.logger.Info("document assigned", "document_id", row.ID, "assignee_id", assigneeID, "assigned_by", actor.ID)
	return FromDataModel(row), nil
}

func (s *Service) GetByID(ctx context.Context, actor Actor, documentID int64) (*Document, error) {
	row, err := s.load(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, actor, row.OfficeID, capView); err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) load(ctx context.Context, documentID int64) (*documentDatamodel.Document, error) {
	row, err := s.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, internal.NewBackendError("failed to read document", internal.ErrCodeBackendFailure, err)
	}
	if row == nil {
		return nil, internal.ErrDocumentNotFound
	}
	return row, nil
}

// authorize checks the actor's office grant against one capability. Office
// grants created through registration allow view and create but withhold
// validate and assign until someone changes the grant directly.
func (s *Service) authorize(ctx context.Context, actor Actor, officeID string, c capability) error {
	if actor.IsAdmin {
		return nil
	}

	grant, err := s.grants.OfficeGrantFor(ctx, actor.ID, officeID)
	if err != nil {
		return internal.NewBackendError("failed to read office grant", internal.ErrCodeBackendFailure, err)
	}
	if grant == nil {
		return internal.NewForbiddenError("no access to this office", internal.ErrCodeCapabilityDenied)
	}

	allowed := false
	switch c {
	case capView:
		allowed = grant.CanViewDocuments
	case capCreate:
		allowed = grant.CanCreateDocuments
	case capValidate:
		allowed = grant.CanValidate
	case capAssign:
		allowed = grant.CanAssign
	}
	if !allowed {
		return internal.NewForbiddenError("capability not granted for this office", internal.ErrCodeCapabilityDenied)
	}
	return nil
}
