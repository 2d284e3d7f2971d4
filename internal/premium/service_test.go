// AngelaMos | 2026
// service_test.go

package premium

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mialtar/internal/config"
	"github.com/carterperez-dev/mialtar/internal/core"
)

type appliedPlan struct {
	userID string
	plan   string
	amount string
	start  time.Time
	end    time.Time
	source string
}

type fakeRepo struct {
	states  map[string]*PlanState
	applied []appliedPlan
	history []BillingHistoryEntry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{states: make(map[string]*PlanState)}
}

func (r *fakeRepo) GetPlanState(
	_ context.Context,
	userID string,
) (*PlanState, error) {
	state, ok := r.states[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return state, nil
}

func (r *fakeRepo) ApplyPlan(
	_ context.Context,
	userID, plan, amount string,
	start, end time.Time,
	source string,
) error {
	r.applied = append(r.applied, appliedPlan{
		userID: userID,
		plan:   plan,
		amount: amount,
		start:  start,
		end:    end,
		source: source,
	})
	return nil
}

func (r *fakeRepo) History(
	_ context.Context,
	userID string,
) ([]BillingHistoryEntry, error) {
	return r.history, nil
}

func testConfig() config.PremiumConfig {
	return config.PremiumConfig{
		PriceMonthly: "$20",
		Price6Months: "$100",
		PriceAnnual:  "$180",
	}
}

func TestUpgrade_PlansAndPrices(t *testing.T) {
	tests := []struct {
		plan       string
		amount     string
		wantMonths int
	}{
		{PlanMonthly, "$20", 1},
		{Plan6Months, "$100", 6},
		{PlanAnnual, "$180", 12},
	}

	for _, tt := range tests {
		t.Run(tt.plan, func(t *testing.T) {
			repo := newFakeRepo()
			repo.states["u1"] = &PlanState{Role: "user"}
			svc := NewService(repo, testConfig())

			resp, err := svc.Upgrade(context.Background(), "u1", tt.plan)
			require.NoError(t, err)

			require.Len(t, repo.applied, 1)
			got := repo.applied[0]
			assert.Equal(t, tt.plan, got.plan)
			assert.Equal(t, tt.amount, got.amount)
			assert.Equal(t, SourceUser, got.source)
			assert.Equal(t, got.start.AddDate(0, tt.wantMonths, 0), got.end)
			assert.Equal(t, tt.amount, resp.Amount)
		})
	}
}

func TestUpgrade_UnknownPlan(t *testing.T) {
	repo := newFakeRepo()
	repo.states["u1"] = &PlanState{Role: "user"}
	svc := NewService(repo, testConfig())

	_, err := svc.Upgrade(context.Background(), "u1", "lifetime")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.applied)
}

func TestUpgrade_UserMissing(t *testing.T) {
	svc := NewService(newFakeRepo(), testConfig())

	_, err := svc.Upgrade(context.Background(), "ghost", PlanMonthly)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpgrade_ActivePlanConflicts(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	repo := newFakeRepo()
	repo.states["u1"] = &PlanState{
		Role:          "user",
		IsPremium:     true,
		PremiumPlan:   PlanMonthly,
		PremiumExpiry: &future,
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Upgrade(context.Background(), "u1", PlanAnnual)
	assert.ErrorIs(t, err, core.ErrConflict)
	assert.Empty(t, repo.applied)
}

func TestUpgrade_ExpiredPlanDoesNotConflict(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	repo := newFakeRepo()
	repo.states["u1"] = &PlanState{
		Role:          "user",
		IsPremium:     true,
		PremiumPlan:   PlanMonthly,
		PremiumExpiry: &past,
	}
	svc := NewService(repo, testConfig())

	_, err := svc.Upgrade(context.Background(), "u1", PlanAnnual)
	assert.NoError(t, err)
	assert.Len(t, repo.applied, 1)
}

func TestGrant_Defaults(t *testing.T) {
	repo := newFakeRepo()
	repo.states["u1"] = &PlanState{Role: "user"}
	svc := NewService(repo, testConfig())

	resp, err := svc.Grant(context.Background(), "u1", "")
	require.NoError(t, err)

	require.Len(t, repo.applied, 1)
	got := repo.applied[0]
	assert.Equal(t, PlanAdmin, got.plan)
	assert.Equal(t, "$0", got.amount)
	assert.Equal(t, SourceAdmin, got.source)
	assert.Equal(t, got.start.AddDate(0, 1, 0), got.end)
	assert.Equal(t, "$0", resp.Amount)
}

func TestGrant_ExplicitPlanKeepsZeroAmount(t *testing.T) {
	repo := newFakeRepo()
	repo.states["u1"] = &PlanState{Role: "user"}
	svc := NewService(repo, testConfig())

	_, err := svc.Grant(context.Background(), "u1", PlanAnnual)
	require.NoError(t, err)

	got := repo.applied[0]
	assert.Equal(t, PlanAnnual, got.plan)
	assert.Equal(t, "$0", got.amount)
	assert.Equal(t, got.start.AddDate(1, 0, 0), got.end)
}

func TestGrant_UserMissing(t *testing.T) {
	svc := NewService(newFakeRepo(), testConfig())

	_, err := svc.Grant(context.Background(), "ghost", PlanMonthly)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStatus_AdminAlwaysPremium(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := newFakeRepo()
	repo.states["a1"] = &PlanState{
		Role:          RoleAdmin,
		IsPremium:     false,
		PremiumPlan:   PlanNone,
		PremiumExpiry: &past,
	}
	svc := NewService(repo, testConfig())

	status, err := svc.Status(context.Background(), "a1")
	require.NoError(t, err)

	assert.True(t, status.IsPremium)
	assert.Equal(t, PlanAdmin, status.PremiumPlan)
	assert.Nil(t, status.PremiumExpiry)
}

func TestStatus_ExpiryEnforcedAtReadTime(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	repo := newFakeRepo()
	repo.states["u1"] = &PlanState{
		Role:          "user",
		IsPremium:     true,
		PremiumPlan:   PlanMonthly,
		PremiumExpiry: &past,
	}
	svc := NewService(repo, testConfig())

	status, err := svc.Status(context.Background(), "u1")
	require.NoError(t, err)

	assert.False(t, status.IsPremium)
	assert.Equal(t, PlanNone, status.PremiumPlan)
}

func TestStatus_ActivePlan(t *testing.T) {
	future := time.Now().Add(time.Hour)
	repo := newFakeRepo()
	repo.states["u1"] = &PlanState{
		Role:          "user",
		IsPremium:     true,
		PremiumPlan:   Plan6Months,
		PremiumExpiry: &future,
	}
	svc := NewService(repo, testConfig())

	status, err := svc.Status(context.Background(), "u1")
	require.NoError(t, err)

	assert.True(t, status.IsPremium)
	assert.Equal(t, Plan6Months, status.PremiumPlan)
	require.NotNil(t, status.PremiumExpiry)
	assert.True(t, status.PremiumExpiry.Equal(future))
}
