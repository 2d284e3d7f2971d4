// AngelaMos | 2026
// entity.go

package wall

import (
	"encoding/json"
	"time"
)

// Wall is one memorial wall. The wall payload is opaque jsonb owned by
// the frontend editor; the backend stores and serves it untouched.
// Updates replace the payload in place, last write wins.
type Wall struct {
	ID        int64           `db:"id"         json:"id"`
	UserID    string          `db:"user_id"    json:"user_id"`
	Name      string          `db:"name"       json:"name"`
	WallData  json.RawMessage `db:"wall_data"  json:"wall_data"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

func (w *Wall) IsOwnedBy(userID string) bool {
	return userID != "" && w.UserID == userID
}
