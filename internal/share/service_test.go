// AngelaMos | 2026
// service_test.go

package share

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mialtar/internal/core"
)

type fakeRepo struct {
	owners map[int64]string
	walls  map[int64]*WallView
	tokens map[int64]string
	grants map[int64][]AllowedUser
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		owners: make(map[int64]string),
		walls:  make(map[int64]*WallView),
		tokens: make(map[int64]string),
		grants: make(map[int64][]AllowedUser),
	}
}

func (r *fakeRepo) addWall(id int64, owner string) {
	r.owners[id] = owner
	r.walls[id] = &WallView{
		ID:       id,
		Name:     fmt.Sprintf("wall-%d", id),
		WallData: json.RawMessage(`{}`),
	}
}

func (r *fakeRepo) GetWallOwner(
	_ context.Context,
	altarID int64,
) (string, error) {
	owner, ok := r.owners[altarID]
	if !ok {
		return "", core.ErrNotFound
	}
	return owner, nil
}

func (r *fakeRepo) GetWallView(
	_ context.Context,
	wallID int64,
) (*WallView, error) {
	w, ok := r.walls[wallID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return w, nil
}

func (r *fakeRepo) GetExistingToken(
	_ context.Context,
	altarID int64,
) (string, error) {
	token, ok := r.tokens[altarID]
	if !ok {
		return "", core.ErrNotFound
	}
	return token, nil
}

func (r *fakeRepo) ReplaceShares(
	_ context.Context,
	altarID int64,
	token string,
	users []AllowedUser,
) error {
	r.tokens[altarID] = token
	r.grants[altarID] = users
	return nil
}

func (r *fakeRepo) FindGrant(
	_ context.Context,
	token, email string,
) (*AltarShare, error) {
	for altarID, t := range r.tokens {
		if t != token {
			continue
		}
		for _, u := range r.grants[altarID] {
			if u.Email == email {
				return &AltarShare{
					AltarID:    altarID,
					ShareToken: token,
					Email:      email,
					Permission: u.Permission,
				}, nil
			}
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeRepo) HasEditGrant(
	_ context.Context,
	altarID int64,
	email string,
) (bool, error) {
	for _, u := range r.grants[altarID] {
		if u.Email == email && u.Permission == PermissionEdit {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateOrUpdatePrivateShare_MintsToken(t *testing.T) {
	repo := newFakeRepo()
	repo.addWall(1, "owner")
	svc := NewService(repo, "https://mialtar.example")

	resp, err := svc.CreateOrUpdatePrivateShare(context.Background(), "owner",
		PrivateShareRequest{
			AltarID: 1,
			AllowedUsers: []AllowedUser{
				{Email: "a@example.com", Permission: PermissionView},
			},
		})
	require.NoError(t, err)

	token := repo.tokens[1]
	require.Len(t, token, 32)
	_, err = hex.DecodeString(token)
	assert.NoError(t, err)

	assert.Equal(
		t,
		"https://mialtar.example/wall/view/"+token,
		resp.PrivateLink,
	)
}

func TestCreateOrUpdatePrivateShare_TokenStableAcrossReshares(t *testing.T) {
	repo := newFakeRepo()
	repo.addWall(1, "owner")
	svc := NewService(repo, "https://mialtar.example")

	first, err := svc.CreateOrUpdatePrivateShare(context.Background(), "owner",
		PrivateShareRequest{
			AltarID: 1,
			AllowedUsers: []AllowedUser{
				{Email: "a@example.com", Permission: PermissionView},
			},
		})
	require.NoError(t, err)

	second, err := svc.CreateOrUpdatePrivateShare(context.Background(), "owner",
		PrivateShareRequest{
			AltarID: 1,
			AllowedUsers: []AllowedUser{
				{Email: "b@example.com", Permission: PermissionEdit},
			},
		})
	require.NoError(t, err)

	assert.Equal(t, first.PrivateLink, second.PrivateLink)
}

func TestCreateOrUpdatePrivateShare_ReplacesGranteeSet(t *testing.T) {
	repo := newFakeRepo()
	repo.addWall(1, "owner")
	svc := NewService(repo, "https://mialtar.example")

	_, err := svc.CreateOrUpdatePrivateShare(context.Background(), "owner",
		PrivateShareRequest{
			AltarID: 1,
			AllowedUsers: []AllowedUser{
				{Email: "old@example.com", Permission: PermissionEdit},
			},
		})
	require.NoError(t, err)

	_, err = svc.CreateOrUpdatePrivateShare(context.Background(), "owner",
		PrivateShareRequest{
			AltarID: 1,
			AllowedUsers: []AllowedUser{
				{Email: "new@example.com", Permission: PermissionView},
			},
		})
	require.NoError(t, err)

	token := repo.tokens[1]

	_, err = svc.ResolvePrivateAccess(
		context.Background(),
		token,
		"old@example.com",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	resp, err := svc.ResolvePrivateAccess(
		context.Background(),
		token,
		"new@example.com",
	)
	require.NoError(t, err)
	assert.Equal(t, PermissionView, resp.Permission)
}

func TestCreateOrUpdatePrivateShare_NonOwnerForbidden(t *testing.T) {
	repo := newFakeRepo()
	repo.addWall(1, "owner")
	svc := NewService(repo, "https://mialtar.example")

	_, err := svc.CreateOrUpdatePrivateShare(context.Background(), "intruder",
		PrivateShareRequest{
			AltarID: 1,
			AllowedUsers: []AllowedUser{
				{Email: "a@example.com", Permission: PermissionView},
			},
		})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestCreateOrUpdatePrivateShare_MissingWall(t *testing.T) {
	svc := NewService(newFakeRepo(), "https://mialtar.example")

	_, err := svc.CreateOrUpdatePrivateShare(context.Background(), "owner",
		PrivateShareRequest{
			AltarID: 404,
			AllowedUsers: []AllowedUser{
				{Email: "a@example.com", Permission: PermissionView},
			},
		})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResolvePrivateAccess_TokenAloneInsufficient(t *testing.T) {
	repo := newFakeRepo()
	repo.addWall(1, "owner")
	svc := NewService(repo, "https://mialtar.example")

	_, err := svc.CreateOrUpdatePrivateShare(context.Background(), "owner",
		PrivateShareRequest{
			AltarID: 1,
			AllowedUsers: []AllowedUser{
				{Email: "invited@example.com", Permission: PermissionEdit},
			},
		})
	require.NoError(t, err)

	token := repo.tokens[1]

	_, err = svc.ResolvePrivateAccess(
		context.Background(),
		token,
		"uninvited@example.com",
	)
	assert.ErrorIs(t, err, core.ErrForbidden)

	resp, err := svc.ResolvePrivateAccess(
		context.Background(),
		token,
		"Invited@Example.com",
	)
	require.NoError(t, err)
	assert.Equal(t, PermissionEdit, resp.Permission)
}

func TestResolvePublicAccess(t *testing.T) {
	repo := newFakeRepo()
	repo.addWall(9, "owner")
	svc := NewService(repo, "https://mialtar.example")

	resp, err := svc.ResolvePublicAccess(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Wall.ID)

	_, err = svc.ResolvePublicAccess(context.Background(), 404)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestNormalizeAllowedUsers(t *testing.T) {
	users := normalizeAllowedUsers([]AllowedUser{
		{Email: "A@Example.com", Permission: PermissionView},
		{Email: "b@example.com", Permission: PermissionView},
		{Email: "a@example.com", Permission: PermissionEdit},
	})

	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, PermissionEdit, users[0].Permission)
	assert.Equal(t, "b@example.com", users[1].Email)
}
