// AngelaMos | 2026
// repository.go

package feature

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/mialtar/internal/core"
)

type Repository interface {
	List(ctx context.Context) ([]Feature, error)
	GetByID(ctx context.Context, id int64) (*Feature, error)
	Update(ctx context.Context, f *Feature) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const featureColumns = `id, name, label, description, icon,
	is_free, is_premium, created_at, updated_at`

func (r *repository) List(ctx context.Context) ([]Feature, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM features
		ORDER BY name`, featureColumns)

	var features []Feature
	if err := r.db.SelectContext(ctx, &features, query); err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}

	return features, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id int64,
) (*Feature, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM features
		WHERE id = $1`, featureColumns)

	var f Feature
	err := r.db.GetContext(ctx, &f, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get feature: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get feature: %w", err)
	}

	return &f, nil
}

func (r *repository) Update(ctx context.Context, f *Feature) error {
	query := `
		UPDATE features
		SET label = $2, description = $3, icon = $4,
			is_free = $5, is_premium = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &f.UpdatedAt, query,
		f.ID,
		f.Label,
		f.Description,
		f.Icon,
		f.IsFree,
		f.IsPremium,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update feature: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update feature: %w", err)
	}

	return nil
}
