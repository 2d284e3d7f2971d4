// AngelaMos | 2026
// service.go

package wall

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/mialtar/internal/auth"
)

// GrantChecker answers whether an email holds an edit share on a wall.
// Satisfied by the share service.
type GrantChecker interface {
	HasEditGrant(
		ctx context.Context,
		wallID int64,
		email string,
	) (bool, error)
}

// UserStatusProvider supplies the effective premium status of the
// requester. The draft limit reads it fresh instead of trusting the
// premium claim baked into a possibly hours-old access token.
type UserStatusProvider interface {
	GetByID(ctx context.Context, id string) (*auth.UserInfo, error)
}

type Service struct {
	repo           Repository
	grants         GrantChecker
	users          UserStatusProvider
	freeDraftLimit int
}

func NewService(
	repo Repository,
	grants GrantChecker,
	users UserStatusProvider,
	freeDraftLimit int,
) *Service {
	return &Service{
		repo:           repo,
		grants:         grants,
		users:          users,
		freeDraftLimit: freeDraftLimit,
	}
}

// Save creates a wall. Free accounts are capped at the configured
// draft limit; premium and admin accounts are not. The cap is enforced
// by the repository inside the insert transaction, so concurrent saves
// cannot race past the count.
func (s *Service) Save(
	ctx context.Context,
	userID string,
	req SaveWallRequest,
) (*Wall, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	w := &Wall{
		UserID:   userID,
		Name:     req.Name,
		WallData: req.WallData,
	}

	if user.Premium {
		if err := s.repo.Create(ctx, w); err != nil {
			return nil, err
		}
		return w, nil
	}

	if err := s.repo.CreateCapped(ctx, w, s.freeDraftLimit); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) List(
	ctx context.Context,
	userID string,
) ([]WallSummary, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get serves the owner view of a wall.
func (s *Service) Get(
	ctx context.Context,
	userID string,
	wallID int64,
) (*Wall, error) {
	w, err := s.repo.GetByID(ctx, wallID)
	if err != nil {
		return nil, err
	}

	req := Requester{UserID: userID, Authenticated: true}
	if err := Authorize(w, req, OpView, false); err != nil {
		return nil, err
	}

	return w, nil
}

// Update applies an edit by the owner or an edit grantee. The grant is
// re-read on every request.
func (s *Service) Update(
	ctx context.Context,
	requester Requester,
	wallID int64,
	req UpdateWallRequest,
) (*Wall, error) {
	w, err := s.repo.GetByID(ctx, wallID)
	if err != nil {
		return nil, err
	}

	hasGrant := false
	if !w.IsOwnedBy(requester.UserID) && requester.Authenticated {
		hasGrant, err = s.grants.HasEditGrant(ctx, wallID, requester.Email)
		if err != nil {
			return nil, err
		}
	}

	if err := Authorize(w, requester, OpEdit, hasGrant); err != nil {
		return nil, err
	}

	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.WallData != nil {
		w.WallData = req.WallData
	}

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}

	return w, nil
}

func (s *Service) Delete(
	ctx context.Context,
	userID string,
	wallID int64,
) error {
	w, err := s.repo.GetByID(ctx, wallID)
	if err != nil {
		return err
	}

	req := Requester{UserID: userID, Authenticated: true}
	if err := Authorize(w, req, OpDelete, false); err != nil {
		return err
	}

	return s.repo.Delete(ctx, wallID)
}
