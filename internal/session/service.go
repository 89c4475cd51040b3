package session

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/catalog"
)

// Principal is what the credential verifier reports on a successful login.
type Principal struct {
	ID      int64
	Name    string
	Email   string
	IsAdmin bool
}

// CredentialVerifier checks login credentials against the backend. It must
// return internal.ErrInvalidCredentials (or another AppError) on failure.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*Principal, error)
}

// AccessReader reports which catalog units a principal has grants for.
type AccessReader interface {
	AccessibleDepartments(ctx context.Context, userID int64) ([]string, error)
	AccessibleDivisions(ctx context.Context, userID int64) ([]string, error)
}

type Service struct {
	store    Store
	verifier CredentialVerifier
	access   AccessReader
	logger   *slog.Logger
}

func NewService(store Store, verifier CredentialVerifier, access AccessReader, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		verifier: verifier,
		access:   access,
		logger:   logger,
	}
}

// Login authenticates and constructs the Identity. The admin account gets the
// full reference catalog; other principals get the subset their grants name,
// falling back to the full catalog when the backend reports no grants at all.
// A failed login never touches a pre-existing persisted session.
func (s *Service) Login(ctx context.Context, loginInput, password string) (*Identity, error) {
	principal, err := s.verifier.Verify(ctx, loginInput, password)
	if err != nil {
		s.logger.Warn("login rejected", "login", loginInput, "error", err)
		return nil, err
	}

	identity := &Identity{
		ID:    strconv.FormatInt(principal.ID, 10),
		Name:  principal.Name,
		Email: principal.Email,
	}

	if principal.IsAdmin || principal.Email == AdminEmail {
		identity.Departments = catalog.Departments()
		identity.Divisions = catalog.Divisions()
	} else {
		departments, divisions, err := s.grantedCatalog(ctx, principal.ID)
		if err != nil {
			return nil, internal.NewBackendError("failed to load access grants", internal.ErrCodeSessionStore, err)
		}
		identity.Departments = departments
		identity.Divisions = divisions
	}

	if err := s.store.Save(ctx, identity); err != nil {
		return nil, internal.NewBackendError("failed to persist session", internal.ErrCodeSessionStore, err)
	}

	s.logger.Info("session established",
		"user_id", identity.ID,
		"departments", len(identity.Departments),
		"divisions", len(identity.Divisions))
	return identity, nil
}

// grantedCatalog maps grant ids onto catalog entries, preserving catalog
// order. No grants at all means the full catalog.
func (s *Service) grantedCatalog(ctx context.Context, userID int64) ([]catalog.Department, []catalog.Division, error) {
	depIDs, err := s.access.AccessibleDepartments(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	divIDs, err := s.access.AccessibleDivisions(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	if len(depIDs) == 0 && len(divIDs) == 0 {
		return catalog.Departments(), catalog.Divisions(), nil
	}

	granted := func(ids []string, id string) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	}

	var departments []catalog.Department
	for _, d := range catalog.Departments() {
		if granted(depIDs, d.ID) {
			departments = append(departments, d)
		}
	}
	var divisions []catalog.Division
	for _, d := range catalog.Divisions() {
		if granted(divIDs, d.ID) {
			divisions = append(divisions, d)
		}
	}
	return departments, divisions, nil
}

// CheckAuthState restores a persisted session without re-authenticating.
func (s *Service) CheckAuthState(ctx context.Context, userID string) (*Identity, error) {
	identity, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, internal.NewBackendError("failed to read session", internal.ErrCodeSessionStore, err)
	}
	if identity == nil {
		return nil, internal.ErrSessionNotFound
	}
	return identity, nil
}

// Logout clears the persisted session. Idempotent: logging out twice is fine.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, userID); err != nil {
		return internal.NewBackendError("failed to clear session", internal.ErrCodeSessionStore, err)
	}
	s.logger.Info("session cleared", "user_id", userID)
	return nil
}

func (s *Service) SelectDepartment(ctx context.Context, userID, departmentID string) (*Identity, error) {
	department, ok := catalog.DepartmentByID(departmentID)
	if !ok {
		return nil, internal.NewNotFoundError("unknown department", internal.ErrCodeDepartmentNotFound)
	}
	return s.mutate(ctx, userID, func(i *Identity) {
		i.SelectDepartment(department)
	})
}

func (s *Service) SelectDivision(ctx context.Context, userID, divisionID string) (*Identity, error) {
	division, ok := catalog.DivisionByID(divisionID)
	if !ok {
		return nil, internal.NewNotFoundError("unknown division", internal.ErrCodeDivisionNotFound)
	}
	return s.mutate(ctx, userID, func(i *Identity) {
		i.SelectDivision(division)
	})
}

func (s *Service) SelectOffice(ctx context.Context, userID, officeID string) (*Identity, error) {
	if _, ok := catalog.OfficeByID(officeID); !ok {
		return nil, internal.NewNotFoundError("unknown office", internal.ErrCodeOfficeNotFound)
	}
	return s.mutate(ctx, userID, func(i *Identity) {
		i.SelectOffice(officeID)
	})
}

// ResetSelection nulls the selection fields but keeps the identity and its
// persisted session alive, unlike Logout.
func (s *Service) ResetSelection(ctx context.Context, userID string) (*Identity, error) {
	return s.mutate(ctx, userID, func(i *Identity) {
		i.ResetSelection()
	})
}

// mutate implements the single load-modify-persist path every selection
// mutation goes through.
func (s *Service) mutate(ctx context.Context, userID string, apply func(*Identity)) (*Identity, error) {
	identity, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, internal.NewBackendError("failed to read session", internal.ErrCodeSessionStore, err)
	}
	if identity == nil {
		return nil, internal.ErrSessionNotFound
	}

	apply(identity)

	if err := s.store.Save(ctx, identity); err != nil {
		return nil, internal.NewBackendError("failed to persist session", internal.ErrCodeSessionStore, err)
	}
	return identity, nil
}
