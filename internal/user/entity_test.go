// AngelaMos | 2026
// entity_test.go

package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectivelyPremium(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name string
		user User
		want bool
	}{
		{
			name: "admin is premium even with expired columns",
			user: User{Role: RoleAdmin, IsPremium: false, PremiumExpiry: &past},
			want: true,
		},
		{
			name: "free user",
			user: User{Role: RoleUser},
			want: false,
		},
		{
			name: "premium without expiry",
			user: User{Role: RoleUser, IsPremium: true},
			want: true,
		},
		{
			name: "premium with future expiry",
			user: User{Role: RoleUser, IsPremium: true, PremiumExpiry: &future},
			want: true,
		},
		{
			name: "premium with past expiry",
			user: User{Role: RoleUser, IsPremium: true, PremiumExpiry: &past},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.EffectivelyPremium(now))
		})
	}
}

func TestEffectivePlan(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	admin := User{Role: RoleAdmin, PremiumPlan: PlanMonthly}
	assert.Equal(t, PlanAdmin, admin.EffectivePlan(now))

	expired := User{
		Role:          RoleUser,
		IsPremium:     true,
		PremiumPlan:   PlanAnnual,
		PremiumExpiry: &past,
	}
	assert.Equal(t, PlanNone, expired.EffectivePlan(now))

	active := User{
		Role:          RoleUser,
		IsPremium:     true,
		PremiumPlan:   Plan6Months,
		PremiumExpiry: &future,
	}
	assert.Equal(t, Plan6Months, active.EffectivePlan(now))
}
