// AngelaMos | 2026
// repository.go

package admin

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/mialtar/internal/core"
)

// AppCounts is the admin-console overview of the MiAltar data set.
type AppCounts struct {
	Users          int `db:"users"           json:"users"`
	PremiumUsers   int `db:"premium_users"   json:"premium_users"`
	Walls          int `db:"walls"           json:"walls"`
	SharedWalls    int `db:"shared_walls"    json:"shared_walls"`
	BillingEntries int `db:"billing_entries" json:"billing_entries"`
}

type Repository interface {
	Counts(ctx context.Context) (*AppCounts, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Counts(ctx context.Context) (*AppCounts, error) {
	// premium_users counts stored flags that are still in force; the
	// read-time expiry rule is applied here the same as everywhere else.
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL) AS users,
			(SELECT COUNT(*) FROM users
				WHERE deleted_at IS NULL
				AND (role = 'admin' OR (is_premium AND
					(premium_expiry IS NULL OR premium_expiry > NOW())))
			) AS premium_users,
			(SELECT COUNT(*) FROM walls) AS walls,
			(SELECT COUNT(DISTINCT altar_id) FROM altar_shares) AS shared_walls,
			(SELECT COUNT(*) FROM billing_history) AS billing_entries`

	var counts AppCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("app counts: %w", err)
	}

	return &counts, nil
}
