// AngelaMos | 2026
// entity.go

package share

import (
	"encoding/json"
	"time"
)

const (
	PermissionView = "view"
	PermissionEdit = "edit"
)

// AltarShare is one grantee row. Every row for the same altar carries
// the same token; the token survives re-shares once issued.
type AltarShare struct {
	ID         int64     `db:"id"          json:"id"`
	AltarID    int64     `db:"altar_id"    json:"altar_id"`
	ShareToken string    `db:"share_token" json:"share_token"`
	Email      string    `db:"email"       json:"email"`
	Permission string    `db:"permission"  json:"permission"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
}

// WallView is the read-only projection served to share recipients and
// public viewers. The wall payload passes through untouched.
type WallView struct {
	ID       int64           `db:"id"        json:"id"`
	Name     string          `db:"name"      json:"name"`
	WallData json.RawMessage `db:"wall_data" json:"wall_data"`
}
