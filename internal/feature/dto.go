// AngelaMos | 2026
// dto.go

package feature

type UpdateFeatureRequest struct {
	Label       *string `json:"label"       validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        *string `json:"icon"        validate:"omitempty,max=100"`
	IsFree      *bool   `json:"is_free"`
	IsPremium   *bool   `json:"is_premium"`
}

type UserInfo struct {
	IsPremium bool   `json:"is_premium"`
	Role      string `json:"role"`
}

type UserFeaturesResponse struct {
	Features map[string]Entitlement `json:"features"`
	UserInfo UserInfo               `json:"user_info"`
}

type CatalogResponse struct {
	Features []Feature `json:"features"`
}
