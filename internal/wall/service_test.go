// AngelaMos | 2026
// service_test.go

package wall

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mialtar/internal/auth"
	"github.com/carterperez-dev/mialtar/internal/core"
)

type fakeRepo struct {
	walls     map[int64]*Wall
	nextID    int64
	countByID map[string]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		walls:     make(map[int64]*Wall),
		nextID:    1,
		countByID: make(map[string]int),
	}
}

func (r *fakeRepo) Create(_ context.Context, w *Wall) error {
	w.ID = r.nextID
	r.nextID++
	r.walls[w.ID] = w
	r.countByID[w.UserID]++
	return nil
}

func (r *fakeRepo) CreateCapped(
	ctx context.Context,
	w *Wall,
	limit int,
) error {
	if r.countByID[w.UserID] >= limit {
		return ErrDraftLimitReached
	}
	return r.Create(ctx, w)
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Wall, error) {
	w, ok := r.walls[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return w, nil
}

func (r *fakeRepo) Update(_ context.Context, w *Wall) error {
	if _, ok := r.walls[w.ID]; !ok {
		return core.ErrNotFound
	}
	r.walls[w.ID] = w
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	w, ok := r.walls[id]
	if !ok {
		return core.ErrNotFound
	}
	r.countByID[w.UserID]--
	delete(r.walls, id)
	return nil
}

func (r *fakeRepo) ListByUser(
	_ context.Context,
	userID string,
) ([]WallSummary, error) {
	var out []WallSummary
	for _, w := range r.walls {
		if w.UserID == userID {
			out = append(out, WallSummary{ID: w.ID, Name: w.Name})
		}
	}
	return out, nil
}

type fakeUsers struct {
	premium map[string]bool
}

func (f *fakeUsers) GetByID(
	_ context.Context,
	id string,
) (*auth.UserInfo, error) {
	premium, ok := f.premium[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &auth.UserInfo{ID: id, Premium: premium}, nil
}

type fakeGrants struct {
	granted map[string]bool
}

func (f *fakeGrants) HasEditGrant(
	_ context.Context,
	wallID int64,
	email string,
) (bool, error) {
	return f.granted[email], nil
}

func newTestService(repo *fakeRepo, users *fakeUsers, limit int) *Service {
	return NewService(repo, &fakeGrants{granted: map[string]bool{}}, users, limit)
}

func TestSave_FreeUserDraftLimit(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeUsers{premium: map[string]bool{"u1": false}}
	svc := newTestService(repo, users, 2)

	req := SaveWallRequest{Name: "w", WallData: json.RawMessage(`{}`)}

	_, err := svc.Save(context.Background(), "u1", req)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "u1", req)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), "u1", req)
	assert.True(t, errors.Is(err, ErrDraftLimitReached))
}

func TestSave_PremiumUserUnlimited(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeUsers{premium: map[string]bool{"u1": true}}
	svc := newTestService(repo, users, 1)

	req := SaveWallRequest{Name: "w", WallData: json.RawMessage(`{}`)}

	for range 5 {
		_, err := svc.Save(context.Background(), "u1", req)
		require.NoError(t, err)
	}
}

func TestSave_DeleteFreesASlot(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeUsers{premium: map[string]bool{"u1": false}}
	svc := newTestService(repo, users, 1)

	req := SaveWallRequest{Name: "w", WallData: json.RawMessage(`{}`)}

	wall, err := svc.Save(context.Background(), "u1", req)
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), "u1", req)
	require.ErrorIs(t, err, ErrDraftLimitReached)

	require.NoError(t, svc.Delete(context.Background(), "u1", wall.ID))

	_, err = svc.Save(context.Background(), "u1", req)
	assert.NoError(t, err)
}

func TestUpdate_EditGrantReadPerRequest(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeUsers{premium: map[string]bool{"owner": true}}
	grants := &fakeGrants{granted: map[string]bool{}}
	svc := NewService(repo, grants, users, 3)

	wall, err := svc.Save(context.Background(), "owner", SaveWallRequest{
		Name:     "shared",
		WallData: json.RawMessage(`{"a":1}`),
	})
	require.NoError(t, err)

	editor := Requester{
		UserID:        "friend",
		Email:         "friend@example.com",
		Authenticated: true,
	}
	update := UpdateWallRequest{WallData: json.RawMessage(`{"a":2}`)}

	_, err = svc.Update(context.Background(), editor, wall.ID, update)
	require.ErrorIs(t, err, core.ErrForbidden)

	grants.granted["friend@example.com"] = true

	updated, err := svc.Update(context.Background(), editor, wall.ID, update)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(updated.WallData))

	// Revoking the grant takes effect on the next request.
	grants.granted["friend@example.com"] = false

	_, err = svc.Update(context.Background(), editor, wall.ID, update)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestDelete_NonOwnerForbidden(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeUsers{premium: map[string]bool{"owner": false}}
	svc := newTestService(repo, users, 3)

	wall, err := svc.Save(context.Background(), "owner", SaveWallRequest{
		Name:     "w",
		WallData: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "stranger", wall.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestGet_OwnerOnly(t *testing.T) {
	repo := newFakeRepo()
	users := &fakeUsers{premium: map[string]bool{"owner": false}}
	svc := newTestService(repo, users, 3)

	wall, err := svc.Save(context.Background(), "owner", SaveWallRequest{
		Name:     "w",
		WallData: json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "owner", wall.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "stranger", wall.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Get(context.Background(), "owner", 999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
