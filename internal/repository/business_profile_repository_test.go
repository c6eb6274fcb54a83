package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

const currentProfileForUpdate = `SELECT (.+) FROM business_profile WHERE company_id = \$1 AND is_current = \$2 FOR UPDATE`

// profileInsertArgs matches the insert of a new current snapshot for companyID.
func profileInsertArgs(companyID int64) []any {
	return []any{
		companyID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), true,
	}
}

func TestBusinessProfileRepository_ReplaceCurrent(t *testing.T) {
	t.Run("Should retire the current snapshot and insert the new one in one transaction", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := NewBusinessProfileRepository(mockPool)

		now := time.Now()
		mockPool.ExpectBegin()
		mockPool.ExpectQuery(currentProfileForUpdate).
			WithArgs(int64(3), true).
			WillReturnRows(mockPool.NewRows([]string{"profile_id", "company_id", "is_current", "created_at"}).
				AddRow(int64(10), int64(3), true, now))
		mockPool.ExpectExec(`UPDATE business_profile SET is_current = \$1 WHERE profile_id = \$2`).
			WithArgs(false, int64(10)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectQuery(`INSERT INTO business_profile (.+) RETURNING profile_id`).
			WithArgs(profileInsertArgs(3)...).
			WillReturnRows(mockPool.NewRows([]string{"profile_id", "company_id", "is_current", "created_at"}).
				AddRow(int64(11), int64(3), true, now))
		mockPool.ExpectCommit()

		employees := 40
		var seen *domain.BusinessProfile
		previous, current, err := repo.ReplaceCurrent(context.Background(), 3, func(prev *domain.BusinessProfile) *domain.BusinessProfile {
			seen = prev
			return &domain.BusinessProfile{EmployeeCount: &employees}
		})
		require.NoError(t, err)
		require.NotNil(t, previous)
		assert.Same(t, previous, seen)
		assert.Equal(t, int64(10), previous.ID)
		assert.Equal(t, int64(11), current.ID)
		assert.Equal(t, int64(3), current.CompanyID)
		assert.True(t, current.IsCurrent)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
	t.Run("Should insert the first snapshot without retiring anything", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := NewBusinessProfileRepository(mockPool)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery(currentProfileForUpdate).
			WithArgs(int64(3), true).
			WillReturnRows(mockPool.NewRows([]string{"profile_id"}))
		mockPool.ExpectQuery(`INSERT INTO business_profile`).
			WithArgs(profileInsertArgs(3)...).
			WillReturnRows(mockPool.NewRows([]string{"profile_id", "company_id", "is_current"}).
				AddRow(int64(1), int64(3), true))
		mockPool.ExpectCommit()

		previous, current, err := repo.ReplaceCurrent(context.Background(), 3, func(prev *domain.BusinessProfile) *domain.BusinessProfile {
			assert.Nil(t, prev)
			return &domain.BusinessProfile{}
		})
		require.NoError(t, err)
		assert.Nil(t, previous)
		assert.Equal(t, int64(1), current.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
	t.Run("Should roll back when the insert fails", func(t *testing.T) {
		mockPool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockPool.Close()
		repo := NewBusinessProfileRepository(mockPool)

		mockPool.ExpectBegin()
		mockPool.ExpectQuery(currentProfileForUpdate).
			WithArgs(int64(3), true).
			WillReturnRows(mockPool.NewRows([]string{"profile_id", "company_id", "is_current"}).
				AddRow(int64(10), int64(3), true))
		mockPool.ExpectExec(`UPDATE business_profile SET is_current`).
			WithArgs(false, int64(10)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mockPool.ExpectQuery(`INSERT INTO business_profile`).
			WithArgs(profileInsertArgs(3)...).
			WillReturnError(errors.New("connection reset"))
		mockPool.ExpectRollback()

		_, _, err = repo.ReplaceCurrent(context.Background(), 3, func(*domain.BusinessProfile) *domain.BusinessProfile {
			return &domain.BusinessProfile{}
		})
		assert.Error(t, err)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
