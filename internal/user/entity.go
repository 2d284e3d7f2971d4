// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	Name          string     `db:"name"`
	Role          string     `db:"role"`
	IsPremium     bool       `db:"is_premium"`
	PremiumPlan   string     `db:"premium_plan"`
	PremiumExpiry *time.Time `db:"premium_expiry"`
	TokenVersion  int        `db:"token_version"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EffectivelyPremium is the premium status every entitlement decision
// uses. Admins are always premium with no expiry; everyone else is
// premium only while their stored expiry has not passed. There is no
// background sweep flipping is_premium off, so expiry is enforced here
// at read time.
func (u *User) EffectivelyPremium(now time.Time) bool {
	if u.IsAdmin() {
		return true
	}
	if !u.IsPremium {
		return false
	}
	return u.PremiumExpiry == nil || u.PremiumExpiry.After(now)
}

// EffectivePlan reports the plan seen by clients: admins report the
// unlimited "admin" plan regardless of stored columns.
func (u *User) EffectivePlan(now time.Time) string {
	if u.IsAdmin() {
		return PlanAdmin
	}
	if !u.EffectivelyPremium(now) {
		return PlanNone
	}
	return u.PremiumPlan
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	PlanNone    = "none"
	PlanMonthly = "monthly"
	Plan6Months = "6months"
	PlanAnnual  = "annual"
	PlanAdmin   = "admin"
)
