// AngelaMos | 2026
// repository_test.go

package premium

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/mialtar/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewRepository(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestApplyPlan_CommitsBothWrites(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Now()
	end := start.AddDate(0, 1, 0)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WithArgs("u1", PlanMonthly, end).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO billing_history").
		WithArgs("u1", PlanMonthly, "$20", start, end, SourceUser).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.ApplyPlan(
		context.Background(),
		"u1",
		PlanMonthly,
		"$20",
		start,
		end,
		SourceUser,
	)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlan_RollsBackWhenBillingInsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Now()
	end := start.AddDate(1, 0, 0)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO billing_history").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.ApplyPlan(
		context.Background(),
		"u1",
		PlanAnnual,
		"$180",
		start,
		end,
		SourceUser,
	)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPlan_MissingUserRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	start := time.Now()
	end := start.AddDate(0, 6, 0)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ApplyPlan(
		context.Background(),
		"ghost",
		Plan6Months,
		"$100",
		start,
		end,
		SourceUser,
	)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
