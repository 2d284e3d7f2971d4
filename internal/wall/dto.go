// AngelaMos | 2026
// dto.go

package wall

import (
	"encoding/json"
	"time"
)

type SaveWallRequest struct {
	Name     string          `json:"name"      validate:"required,min=1,max=200"`
	WallData json.RawMessage `json:"wall_data" validate:"required"`
}

type UpdateWallRequest struct {
	Name     *string         `json:"name"      validate:"omitempty,min=1,max=200"`
	WallData json.RawMessage `json:"wall_data" validate:"omitempty"`
}

type SaveWallResponse struct {
	WallID int64  `json:"wall_id"`
	Name   string `json:"name"`
}

// UpdateWallResponse acknowledges an edit without echoing wall_data
// back to the editor.
type UpdateWallResponse struct {
	Message string `json:"message"`
	WallID  int64  `json:"wall_id"`
	Name    string `json:"name"`
}

type WallSummary struct {
	ID        int64     `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type ListWallsResponse struct {
	Walls []WallSummary `json:"walls"`
}
