// AngelaMos | 2026
// service.go

package share

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/mialtar/internal/core"
)

type Service struct {
	repo            Repository
	frontendBaseURL string
}

func NewService(repo Repository, frontendBaseURL string) *Service {
	return &Service{
		repo:            repo,
		frontendBaseURL: strings.TrimSuffix(frontendBaseURL, "/"),
	}
}

// CreateOrUpdatePrivateShare replaces the altar's grantee set and
// returns the share link. The token is minted on the first share and
// reused afterwards so previously sent links keep working.
func (s *Service) CreateOrUpdatePrivateShare(
	ctx context.Context,
	requesterID string,
	req PrivateShareRequest,
) (*PrivateShareResponse, error) {
	ownerID, err := s.repo.GetWallOwner(ctx, req.AltarID)
	if err != nil {
		return nil, err
	}

	if ownerID != requesterID {
		return nil, fmt.Errorf(
			"share altar %d: %w",
			req.AltarID,
			core.ErrForbidden,
		)
	}

	token, err := s.repo.GetExistingToken(ctx, req.AltarID)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			return nil, err
		}
		token, err = core.GenerateShareToken()
		if err != nil {
			return nil, fmt.Errorf("generate share token: %w", err)
		}
	}

	users := normalizeAllowedUsers(req.AllowedUsers)

	if err := s.repo.ReplaceShares(ctx, req.AltarID, token, users); err != nil {
		return nil, err
	}

	return &PrivateShareResponse{
		PrivateLink: fmt.Sprintf("%s/wall/view/%s", s.frontendBaseURL, token),
	}, nil
}

// ResolvePrivateAccess matches the token and the requester email
// together. A valid token with the wrong email is refused the same way
// as a bogus token.
func (s *Service) ResolvePrivateAccess(
	ctx context.Context,
	token, email string,
) (*SharedWallResponse, error) {
	grant, err := s.repo.FindGrant(ctx, token, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve share: %w", core.ErrForbidden)
		}
		return nil, err
	}

	wall, err := s.repo.GetWallView(ctx, grant.AltarID)
	if err != nil {
		return nil, err
	}

	return &SharedWallResponse{
		Wall:       *wall,
		Permission: grant.Permission,
	}, nil
}

// ResolvePublicAccess serves a wall by its raw numeric id, view only.
func (s *Service) ResolvePublicAccess(
	ctx context.Context,
	wallID int64,
) (*PublicWallResponse, error) {
	wall, err := s.repo.GetWallView(ctx, wallID)
	if err != nil {
		return nil, err
	}

	return &PublicWallResponse{Wall: *wall}, nil
}

// HasEditGrant reports whether the email holds an edit share on the
// wall. The wall package consults this for non-owner edits.
func (s *Service) HasEditGrant(
	ctx context.Context,
	wallID int64,
	email string,
) (bool, error) {
	return s.repo.HasEditGrant(ctx, wallID, strings.ToLower(email))
}

// normalizeAllowedUsers lowercases emails and collapses duplicates.
// The last entry for an email wins, matching what a grantee would see
// if the owner submitted the list twice.
func normalizeAllowedUsers(users []AllowedUser) []AllowedUser {
	seen := make(map[string]int, len(users))
	out := make([]AllowedUser, 0, len(users))

	for _, u := range users {
		email := strings.ToLower(u.Email)
		if idx, ok := seen[email]; ok {
			out[idx].Permission = u.Permission
			continue
		}
		seen[email] = len(out)
		out = append(out, AllowedUser{
			Email:      email,
			Permission: u.Permission,
		})
	}

	return out
}
