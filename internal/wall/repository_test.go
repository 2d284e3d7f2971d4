// AngelaMos | 2026
// repository_test.go

package wall

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestCreateCapped_UnderLimitInserts(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM users").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1"))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("INSERT INTO walls").
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(9), now, now),
		)
	mock.ExpectCommit()

	w := &Wall{
		UserID:   "u1",
		Name:     "ofrenda",
		WallData: json.RawMessage(`{}`),
	}
	require.NoError(t, repo.CreateCapped(context.Background(), w, 3))
	assert.Equal(t, int64(9), w.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCapped_AtLimitRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM users").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("u1"))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	w := &Wall{
		UserID:   "u1",
		Name:     "ofrenda",
		WallData: json.RawMessage(`{}`),
	}
	err := repo.CreateCapped(context.Background(), w, 3)
	assert.ErrorIs(t, err, ErrDraftLimitReached)
	assert.NoError(t, mock.ExpectationsWereMet())
}
