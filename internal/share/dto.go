// AngelaMos | 2026
// dto.go

package share

type AllowedUser struct {
	Email      string `json:"email"      validate:"required,email,max=255"`
	Permission string `json:"permission" validate:"required,oneof=view edit"`
}

type PrivateShareRequest struct {
	AltarID      int64         `json:"altar_id"      validate:"required"`
	AllowedUsers []AllowedUser `json:"allowed_users" validate:"required,min=1,max=50,dive"`
}

type PrivateShareResponse struct {
	PrivateLink string `json:"private_link"`
}

type SharedWallResponse struct {
	Wall       WallView `json:"wall"`
	Permission string   `json:"permission"`
}

type PublicWallResponse struct {
	Wall WallView `json:"wall"`
}
