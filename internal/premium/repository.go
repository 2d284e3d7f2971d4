// AngelaMos | 2026
// repository.go

package premium

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mialtar/internal/core"
)

// PlanState is the premium-relevant slice of a user row.
type PlanState struct {
	Role          string     `db:"role"`
	IsPremium     bool       `db:"is_premium"`
	PremiumPlan   string     `db:"premium_plan"`
	PremiumExpiry *time.Time `db:"premium_expiry"`
}

type Repository interface {
	GetPlanState(ctx context.Context, userID string) (*PlanState, error)
	ApplyPlan(
		ctx context.Context,
		userID, plan, amount string,
		start, end time.Time,
		source string,
	) error
	History(
		ctx context.Context,
		userID string,
	) ([]BillingHistoryEntry, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository takes the full pool rather than a DBTX because the plan
// write spans two tables inside one transaction.
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetPlanState(
	ctx context.Context,
	userID string,
) (*PlanState, error) {
	query := `
		SELECT role, is_premium, premium_plan, premium_expiry
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var state PlanState
	err := r.db.GetContext(ctx, &state, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get plan state: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan state: %w", err)
	}

	return &state, nil
}

// ApplyPlan updates the user row and appends the billing record in one
// transaction. A rollback leaves neither side applied.
func (r *repository) ApplyPlan(
	ctx context.Context,
	userID, plan, amount string,
	start, end time.Time,
	source string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		updateQuery := `
			UPDATE users
			SET is_premium = TRUE, premium_plan = $2, premium_expiry = $3,
				updated_at = NOW()
			WHERE id = $1 AND deleted_at IS NULL`

		result, err := tx.ExecContext(ctx, updateQuery, userID, plan, end)
		if err != nil {
			return fmt.Errorf("update premium plan: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update premium plan: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("update premium plan: %w", core.ErrNotFound)
		}

		insertQuery := `
			INSERT INTO billing_history
				(user_id, plan_type, amount, start_date, end_date, source)
			VALUES ($1, $2, $3, $4, $5, $6)`

		if _, err := tx.ExecContext(ctx, insertQuery,
			userID, plan, amount, start, end, source,
		); err != nil {
			return fmt.Errorf("insert billing record: %w", err)
		}

		return nil
	})
}

func (r *repository) History(
	ctx context.Context,
	userID string,
) ([]BillingHistoryEntry, error) {
	query := `
		SELECT id, user_id, plan_type, amount, start_date, end_date,
			source, created_at
		FROM billing_history
		WHERE user_id = $1
		ORDER BY start_date DESC`

	var entries []BillingHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list billing history: %w", err)
	}

	return entries, nil
}
