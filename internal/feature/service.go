// AngelaMos | 2026
// service.go

package feature

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/mialtar/internal/auth"
)

// UserStatusProvider supplies the effective premium status and role of
// the requesting user. Satisfied by the user service.
type UserStatusProvider interface {
	GetByID(ctx context.Context, id string) (*auth.UserInfo, error)
}

type Service struct {
	repo  Repository
	users UserStatusProvider
}

func NewService(repo Repository, users UserStatusProvider) *Service {
	return &Service{repo: repo, users: users}
}

// GetUserFeatures resolves the full catalog for one user. The catalog
// is read fresh on every call so admin edits take effect immediately.
func (s *Service) GetUserFeatures(
	ctx context.Context,
	userID string,
) (*UserFeaturesResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &UserFeaturesResponse{
		Features: Resolve(user.Premium, catalog),
		UserInfo: UserInfo{
			IsPremium: user.Premium,
			Role:      user.Role,
		},
	}, nil
}

func (s *Service) ListCatalog(ctx context.Context) ([]Feature, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateFeature(
	ctx context.Context,
	id int64,
	req UpdateFeatureRequest,
) (*Feature, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		f.Label = *req.Label
	}
	if req.Description != nil {
		f.Description = *req.Description
	}
	if req.Icon != nil {
		f.Icon = *req.Icon
	}
	if req.IsFree != nil {
		f.IsFree = *req.IsFree
	}
	if req.IsPremium != nil {
		f.IsPremium = *req.IsPremium
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}
