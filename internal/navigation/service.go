package navigation

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/geocasagroup/portal/internal"
	"github.com/geocasagroup/portal/internal/catalog"
	"github.com/geocasagroup/portal/internal/session"
)

// SessionAPI is the slice of the session service the state machine drives.
type SessionAPI interface {
	CheckAuthState(ctx context.Context, userID string) (*session.Identity, error)
	SelectDepartment(ctx context.Context, userID, departmentID string) (*session.Identity, error)
	SelectDivision(ctx context.Context, userID, divisionID string) (*session.Identity, error)
	SelectOffice(ctx context.Context, userID, officeID string) (*session.Identity, error)
	ResetSelection(ctx context.Context, userID string) (*session.Identity, error)
	Logout(ctx context.Context, userID string) error
}

// Service owns the per-user navigation flags and the legal transitions
// between them. Flags are transient: a reload recomputes the view from the
// persisted identity alone, which is why they live in memory and not in the
// session store.
type Service struct {
	sessions SessionAPI
	logger   *slog.Logger

	mu     sync.Mutex
	states map[string]*State
}

func NewService(sessions SessionAPI, logger *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		logger:   logger,
		states:   make(map[string]*State),
	}
}

// update applies one mutation to the user's flags under the lock and returns
// the resulting copy. Concurrent requests for the same user serialize here;
// nothing outside this method touches the stored *State.
func (s *Service) update(userID string, apply func(*State)) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[userID]
	if !ok {
		st = &State{}
		s.states[userID] = st
	}
	if apply != nil {
		apply(st)
	}
	return *st
}

// State returns a copy of the user's navigation flags.
func (s *Service) State(userID string) State {
	return s.update(userID, nil)
}

// CurrentView resolves the screen for the user. A missing session is not an
// error here: it resolves to the login view.
func (s *Service) CurrentView(ctx context.Context, userID string) (View, error) {
	identity, err := s.sessions.CheckAuthState(ctx, userID)
	if err != nil {
		if errors.Is(err, internal.ErrSessionNotFound) {
			identity = nil
		} else {
			return View{}, err
		}
	}
	return Resolve(s.State(userID), identity), nil
}

// SelectDepartment routes through the session store, then decides the detail
// screen. The land-cadastral department may route through the office chooser
// when the caller asks for it; the generic department detail is the default.
func (s *Service) SelectDepartment(ctx context.Context, userID, departmentID string, viaChooser bool) (View, error) {
	identity, err := s.sessions.SelectDepartment(ctx, userID, departmentID)
	if err != nil {
		return View{}, err
	}

	st := s.update(userID, func(st *State) {
		if viaChooser && departmentID == catalog.LandCadastralDepartmentID {
			st.ShowLandCadastralOffices = true
		} else {
			st.ShowDepartmentDetail = departmentID
		}
	})
	return Resolve(st, identity), nil
}

// SelectDivision applies the single-office shortcut: a division with exactly
// one office jumps straight to that office's dashboard, skipping the
// division-detail screen.
func (s *Service) SelectDivision(ctx context.Context, userID, divisionID string) (View, error) {
	division, ok := catalog.DivisionByID(divisionID)
	if !ok {
		return View{}, internal.NewNotFoundError("unknown division", internal.ErrCodeDivisionNotFound)
	}

	identity, err := s.sessions.SelectDivision(ctx, userID, divisionID)
	if err != nil {
		return View{}, err
	}

	var st State
	if len(division.Offices) == 1 {
		office := division.Offices[0]
		identity, err = s.sessions.SelectOffice(ctx, userID, office.ID)
		if err != nil {
			return View{}, err
		}
		st = s.update(userID, func(st *State) {
			st.SelectedOffice = office.ID
		})
	} else {
		st = s.update(userID, func(st *State) {
			st.ShowDivisionDetail = divisionID
		})
	}
	return Resolve(st, identity), nil
}

func (s *Service) SelectOffice(ctx context.Context, userID, officeID string) (View, error) {
	identity, err := s.sessions.SelectOffice(ctx, userID, officeID)
	if err != nil {
		return View{}, err
	}

	st := s.update(userID, func(st *State) {
		st.SelectedOffice = officeID
	})
	return Resolve(st, identity), nil
}

// OpenLandOffice activates one of the two land-office sub-dashboards. Any
// other value is a no-op.
func (s *Service) OpenLandOffice(ctx context.Context, userID, landOffice string) (View, error) {
	s.update(userID, func(st *State) {
		if catalog.IsLandOffice(landOffice) {
			st.SelectedLandOffice = landOffice
		}
	})
	return s.CurrentView(ctx, userID)
}

// Back clears exactly one flag per invocation, walking the resolver's
// priority ladder in reverse. It does not re-run after clearing: one user
// action, one state transition.
func (s *Service) Back(ctx context.Context, userID string) (View, error) {
	cleared := false
	s.update(userID, func(st *State) {
		switch {
		case st.SelectedLandOffice != "":
			st.SelectedLandOffice = ""
			cleared = true
		case st.ShowLandCadastralOffices:
			st.ShowLandCadastralOffices = false
			cleared = true
		case st.ShowDepartmentDetail != "":
			st.ShowDepartmentDetail = ""
			cleared = true
		case st.ShowDivisionDetail != "":
			st.ShowDivisionDetail = ""
			cleared = true
		case st.SelectedOffice != "":
			st.SelectedOffice = ""
			cleared = true
		}
	})

	if !cleared {
		identity, err := s.sessions.CheckAuthState(ctx, userID)
		if err != nil && !errors.Is(err, internal.ErrSessionNotFound) {
			return View{}, err
		}
		if identity != nil && identity.CurrentDepartment != nil {
			if _, err := s.sessions.ResetSelection(ctx, userID); err != nil {
				// last resort: a dead selection is worse than a re-login
				s.logger.Warn("reset selection failed, logging out", "user_id", userID, "error", err)
				if lerr := s.sessions.Logout(ctx, userID); lerr != nil {
					return View{}, lerr
				}
			}
		}
		// no identity or no department selected: back is a no-op
	}

	return s.CurrentView(ctx, userID)
}

// BackToSelector is the hard reset to the picker screen: every flag cleared
// and the selection reset, without logging out.
func (s *Service) BackToSelector(ctx context.Context, userID string) (View, error) {
	s.update(userID, func(st *State) {
		*st = State{}
	})

	if _, err := s.sessions.ResetSelection(ctx, userID); err != nil && !errors.Is(err, internal.ErrSessionNotFound) {
		return View{}, err
	}
	return s.CurrentView(ctx, userID)
}

// Forget drops the in-memory flags, called on logout.
func (s *Service) Forget(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
