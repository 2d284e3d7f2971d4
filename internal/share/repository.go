// AngelaMos | 2026
// repository.go

package share

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/mialtar/internal/core"
)

type Repository interface {
	GetWallOwner(ctx context.Context, altarID int64) (string, error)
	GetWallView(ctx context.Context, wallID int64) (*WallView, error)
	GetExistingToken(ctx context.Context, altarID int64) (string, error)
	ReplaceShares(
		ctx context.Context,
		altarID int64,
		token string,
		users []AllowedUser,
	) error
	FindGrant(
		ctx context.Context,
		token, email string,
	) (*AltarShare, error)
	HasEditGrant(
		ctx context.Context,
		altarID int64,
		email string,
	) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository takes the full pool because the re-share write replaces
// the altar's whole grantee set inside one transaction.
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetWallOwner(
	ctx context.Context,
	altarID int64,
) (string, error) {
	query := `SELECT user_id FROM walls WHERE id = $1`

	var ownerID string
	err := r.db.GetContext(ctx, &ownerID, query, altarID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get wall owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get wall owner: %w", err)
	}

	return ownerID, nil
}

func (r *repository) GetWallView(
	ctx context.Context,
	wallID int64,
) (*WallView, error) {
	query := `SELECT id, name, wall_data FROM walls WHERE id = $1`

	var view WallView
	err := r.db.GetContext(ctx, &view, query, wallID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get wall view: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get wall view: %w", err)
	}

	return &view, nil
}

func (r *repository) GetExistingToken(
	ctx context.Context,
	altarID int64,
) (string, error) {
	query := `
		SELECT share_token
		FROM altar_shares
		WHERE altar_id = $1
		LIMIT 1`

	var token string
	err := r.db.GetContext(ctx, &token, query, altarID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("get share token: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get share token: %w", err)
	}

	return token, nil
}

// ReplaceShares swaps the altar's full grantee set. Delete and insert
// run in one transaction so a failure leaves the previous set intact.
func (r *repository) ReplaceShares(
	ctx context.Context,
	altarID int64,
	token string,
	users []AllowedUser,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deleteQuery := `DELETE FROM altar_shares WHERE altar_id = $1`
		if _, err := tx.ExecContext(ctx, deleteQuery, altarID); err != nil {
			return fmt.Errorf("delete shares: %w", err)
		}

		insertQuery := `
			INSERT INTO altar_shares (altar_id, share_token, email, permission)
			VALUES ($1, $2, $3, $4)`

		for _, u := range users {
			if _, err := tx.ExecContext(ctx, insertQuery,
				altarID, token, u.Email, u.Permission,
			); err != nil {
				return fmt.Errorf("insert share: %w", err)
			}
		}

		return nil
	})
}

func (r *repository) FindGrant(
	ctx context.Context,
	token, email string,
) (*AltarShare, error) {
	query := `
		SELECT id, altar_id, share_token, email, permission, created_at
		FROM altar_shares
		WHERE share_token = $1 AND email = $2`

	var grant AltarShare
	err := r.db.GetContext(ctx, &grant, query, token, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find grant: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find grant: %w", err)
	}

	return &grant, nil
}

func (r *repository) HasEditGrant(
	ctx context.Context,
	altarID int64,
	email string,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM altar_shares
			WHERE altar_id = $1 AND email = $2 AND permission = 'edit'
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, altarID, email); err != nil {
		return false, fmt.Errorf("check edit grant: %w", err)
	}

	return exists, nil
}
