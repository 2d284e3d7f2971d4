// AngelaMos | 2026
// dto.go

package premium

import (
	"time"
)

type UpgradeRequest struct {
	Plan string `json:"plan" validate:"required,oneof=monthly 6months annual"`
}

type GivePremiumRequest struct {
	UserID   string `json:"user_id"   validate:"required,uuid"`
	PlanType string `json:"plan_type" validate:"omitempty,oneof=monthly 6months annual admin"`
}

type StatusResponse struct {
	IsPremium     bool       `json:"is_premium"`
	PremiumPlan   string     `json:"premium_plan"`
	PremiumExpiry *time.Time `json:"premium_expiry"`
}

type HistoryResponse struct {
	History []BillingHistoryEntry `json:"history"`
}

type UpgradeResponse struct {
	Plan          string    `json:"plan"`
	Amount        string    `json:"amount"`
	PremiumExpiry time.Time `json:"premium_expiry"`
}
