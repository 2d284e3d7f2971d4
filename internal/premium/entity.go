// AngelaMos | 2026
// entity.go

package premium

import (
	"time"
)

const (
	SourceUser  = "user"
	SourceAdmin = "admin"
)

// BillingHistoryEntry is one append-only billing record. Amounts are
// display strings because no payment gateway is wired; the backend only
// records what the user was shown.
type BillingHistoryEntry struct {
	ID        int64     `db:"id"         json:"id"`
	UserID    string    `db:"user_id"    json:"user_id"`
	PlanType  string    `db:"plan_type"  json:"plan_type"`
	Amount    string    `db:"amount"     json:"amount"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date"   json:"end_date"`
	Source    string    `db:"source"     json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
