// AngelaMos | 2026
// entity.go

package feature

import (
	"time"
)

// Feature is one row of the entitlement catalog. The catalog is seeded
// by migration and only ever edited by admins; rows are not deleted in
// normal operation.
type Feature struct {
	ID          int64     `db:"id"          json:"id"`
	Name        string    `db:"name"        json:"name"`
	Label       string    `db:"label"       json:"label"`
	Description string    `db:"description" json:"description"`
	Icon        string    `db:"icon"        json:"icon"`
	IsFree      bool      `db:"is_free"     json:"is_free"`
	IsPremium   bool      `db:"is_premium"  json:"is_premium"`
	CreatedAt   time.Time `db:"created_at"  json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"  json:"updated_at"`
}

// Entitlement is a feature as resolved for one user.
type Entitlement struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsFree      bool   `json:"is_free"`
	IsPremium   bool   `json:"is_premium"`
	CanUse      bool   `json:"can_use"`
}

// Resolve maps the catalog to per-feature entitlements for a user with
// the given effective premium status. A feature with both flags false
// is disabled for everyone, admins included.
func Resolve(premium bool, catalog []Feature) map[string]Entitlement {
	resolved := make(map[string]Entitlement, len(catalog))

	for _, f := range catalog {
		resolved[f.Name] = Entitlement{
			Label:       f.Label,
			Description: f.Description,
			Icon:        f.Icon,
			IsFree:      f.IsFree,
			IsPremium:   f.IsPremium,
			CanUse:      f.IsFree || (premium && f.IsPremium),
		}
	}

	return resolved
}
