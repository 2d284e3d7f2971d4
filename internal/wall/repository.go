// AngelaMos | 2026
// repository.go

package wall

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mialtar/internal/core"
)

type Repository interface {
	Create(ctx context.Context, w *Wall) error
	CreateCapped(ctx context.Context, w *Wall, limit int) error
	GetByID(ctx context.Context, id int64) (*Wall, error)
	Update(ctx context.Context, w *Wall) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID string) ([]WallSummary, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository takes the full pool because the capped insert counts
// and writes inside one transaction.
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, w *Wall) error {
	query := `
		INSERT INTO walls (user_id, name, wall_data)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.GetContext(ctx, w, query, w.UserID, w.Name, w.WallData)
	if err != nil {
		return fmt.Errorf("create wall: %w", err)
	}

	return nil
}

// CreateCapped inserts the wall only while the owner holds fewer than
// limit walls. The user row is locked for the duration of the
// transaction so two concurrent saves cannot both pass the count.
func (r *repository) CreateCapped(
	ctx context.Context,
	w *Wall,
	limit int,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		lockQuery := `SELECT id FROM users WHERE id = $1 FOR UPDATE`

		var ownerID string
		err := tx.GetContext(ctx, &ownerID, lockQuery, w.UserID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lock user: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		countQuery := `SELECT COUNT(*) FROM walls WHERE user_id = $1`

		var count int
		if err := tx.GetContext(ctx, &count, countQuery, w.UserID); err != nil {
			return fmt.Errorf("count walls: %w", err)
		}
		if count >= limit {
			return fmt.Errorf("create wall: %w", ErrDraftLimitReached)
		}

		insertQuery := `
			INSERT INTO walls (user_id, name, wall_data)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`

		err = tx.GetContext(ctx, w, insertQuery, w.UserID, w.Name, w.WallData)
		if err != nil {
			return fmt.Errorf("create wall: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Wall, error) {
	query := `
		SELECT id, user_id, name, wall_data, created_at, updated_at
		FROM walls
		WHERE id = $1`

	var w Wall
	err := r.db.GetContext(ctx, &w, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get wall: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get wall: %w", err)
	}

	return &w, nil
}

func (r *repository) Update(ctx context.Context, w *Wall) error {
	query := `
		UPDATE walls
		SET name = $2, wall_data = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &w.UpdatedAt, query, w.ID, w.Name, w.WallData)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update wall: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update wall: %w", err)
	}

	return nil
}

// Delete removes the wall; share rows go with it through the cascading
// foreign key.
func (r *repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM walls WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete wall: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete wall: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete wall: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]WallSummary, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM walls
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var walls []WallSummary
	if err := r.db.SelectContext(ctx, &walls, query, userID); err != nil {
		return nil, fmt.Errorf("list walls: %w", err)
	}

	return walls, nil
}
