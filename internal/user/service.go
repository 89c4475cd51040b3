package user

import (
	"context"
	"fmt"

	"github.com/geocasagroup/portal/internal"
)

type Repository interface {
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	}
	return u, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if u == nil {
		return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	}
	return u, nil
}

// ResolveSystemUserID maps an email onto a numeric account id. Grant
// submission depends on this lookup and aborts entirely when it fails.
func (s *Service) ResolveSystemUserID(ctx context.Context, email string) (int64, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve user id for %s: %w", email, err)
	}
	if u == nil {
		return 0, internal.NewNotFoundError("no account matches email", internal.ErrCodeUserNotFound)
	}
	return u.ID, nil
}
