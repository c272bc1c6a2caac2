package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/school-fees-platform/internal/models"
)

func TestStorage_FindOverdueFees(t *testing.T) {
	today := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setup     func(t *testing.T, f *TestDataFactory) []int
		wantCount int
	}{
		{
			name: "finds fees past due date with pending statuses",
			setup: func(t *testing.T, f *TestDataFactory) []int {
				data := f.CreateSchoolData(t)
				id1 := f.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
					1000, today.AddDate(0, 0, -3), models.FeeStatusNotStarted, true)
				id2 := f.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
					2000, today.AddDate(0, 0, -1), models.FeeStatusPending, true)
				return []int{id1, id2}
			},
			wantCount: 2,
		},
		{
			name: "skips paid, inactive and future fees",
			setup: func(t *testing.T, f *TestDataFactory) []int {
				data := f.CreateSchoolData(t)
				f.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
					1000, today.AddDate(0, 0, -3), models.FeeStatusPaid, true)
				f.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
					1000, today.AddDate(0, 0, -3), models.FeeStatusOverdue, true)
				f.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
					1000, today.AddDate(0, 0, -3), models.FeeStatusNotStarted, false)
				f.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
					1000, today.AddDate(0, 0, 5), models.FeeStatusNotStarted, true)
				return nil
			},
			wantCount: 0,
		},
		{
			name: "fee due exactly today is not overdue yet",
			setup: func(t *testing.T, f *TestDataFactory) []int {
				data := f.CreateSchoolData(t)
				f.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
					1000, today, models.FeeStatusNotStarted, true)
				return nil
			},
			wantCount: 0,
		},
		{
			name: "collects fees across organizations in one pass",
			setup: func(t *testing.T, f *TestDataFactory) []int {
				first := f.CreateSchoolData(t)
				second := f.CreateSchoolData(t)
				id1 := f.CreateFee(t, first.ClassID, first.SessionID, first.OrganizationUID,
					1000, today.AddDate(0, 0, -2), models.FeeStatusNotStarted, true)
				id2 := f.CreateFee(t, second.ClassID, second.SessionID, second.OrganizationUID,
					3000, today.AddDate(0, 0, -7), models.FeeStatusPending, true)
				return []int{id1, id2}
			},
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			wantIDs := tt.setup(t, factory)

			got, err := storage.FindOverdueFees(context.Background(), today)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)

			gotIDs := make([]int, 0, len(got))
			for _, fee := range got {
				gotIDs = append(gotIDs, fee.ID)
			}
			for _, id := range wantIDs {
				assert.Contains(t, gotIDs, id)
			}
		})
	}
}

func TestStorage_FindActiveLateFeePolicy(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(t *testing.T, f *TestDataFactory) (classID, sessionID int)
		wantAmount float64
		wantNil    bool
	}{
		{
			name: "returns active policy for class and session",
			setup: func(t *testing.T, f *TestDataFactory) (int, int) {
				data := f.CreateSchoolData(t)
				f.CreatePolicy(t, data.ClassID, data.SessionID, data.OrganizationUID, 500, true)
				return data.ClassID, data.SessionID
			},
			wantAmount: 500,
		},
		{
			name: "no policy configured returns nil without error",
			setup: func(t *testing.T, f *TestDataFactory) (int, int) {
				data := f.CreateSchoolData(t)
				return data.ClassID, data.SessionID
			},
			wantNil: true,
		},
		{
			name: "inactive policy is ignored",
			setup: func(t *testing.T, f *TestDataFactory) (int, int) {
				data := f.CreateSchoolData(t)
				f.CreatePolicy(t, data.ClassID, data.SessionID, data.OrganizationUID, 500, false)
				return data.ClassID, data.SessionID
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			classID, sessionID := tt.setup(t, factory)

			got, err := storage.FindActiveLateFeePolicy(context.Background(), classID, sessionID)
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantAmount, got.Amount)
			assert.Equal(t, classID, got.ClassID)
			assert.Equal(t, sessionID, got.SessionID)
		})
	}
}

func TestStorage_CreateLateFeeCharge(t *testing.T) {
	t.Run("first insert returns one row", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		verification := NewTestVerification(storage)
		data := factory.CreateSchoolData(t)
		feeID := factory.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
			1000, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), models.FeeStatusNotStarted, true)

		inserted, err := storage.CreateLateFeeCharge(context.Background(), testCharge(feeID, data.OrganizationUID))
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)
		verification.VerifyChargeCount(t, feeID, 1)
	})

	t.Run("duplicate insert is silently skipped", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		verification := NewTestVerification(storage)
		data := factory.CreateSchoolData(t)
		feeID := factory.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
			1000, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), models.FeeStatusNotStarted, true)

		inserted, err := storage.CreateLateFeeCharge(context.Background(), testCharge(feeID, data.OrganizationUID))
		require.NoError(t, err)
		require.Equal(t, 1, inserted)

		inserted, err = storage.CreateLateFeeCharge(context.Background(), testCharge(feeID, data.OrganizationUID))
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)
		verification.VerifyChargeCount(t, feeID, 1)
	})

	t.Run("charge exists reflects inserted rows", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		data := factory.CreateSchoolData(t)
		feeID := factory.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
			1000, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), models.FeeStatusNotStarted, true)

		exists, err := storage.LateFeeChargeExists(context.Background(), feeID)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = storage.CreateLateFeeCharge(context.Background(), testCharge(feeID, data.OrganizationUID))
		require.NoError(t, err)

		exists, err = storage.LateFeeChargeExists(context.Background(), feeID)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestStorage_MarkFeeOverdue(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verification := NewTestVerification(storage)
	data := factory.CreateSchoolData(t)
	feeID := factory.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
		1000, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), models.FeeStatusPending, true)

	err := storage.MarkFeeOverdue(context.Background(), feeID)
	require.NoError(t, err)
	verification.VerifyFeeStatus(t, feeID, models.FeeStatusOverdue)

	// Повторный перевод в overdue не ошибка
	err = storage.MarkFeeOverdue(context.Background(), feeID)
	require.NoError(t, err)
	verification.VerifyFeeStatus(t, feeID, models.FeeStatusOverdue)
}

func TestStorage_ResolveFeeContext(t *testing.T) {
	t.Run("returns class and session names", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		data := factory.CreateSchoolData(t)
		feeID := factory.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
			1000, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), models.FeeStatusNotStarted, true)

		got, err := storage.ResolveFeeContext(context.Background(), feeID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "5A", got.ClassName)
		assert.Equal(t, "2025/2026", got.SessionName)
		assert.Equal(t, data.ClassID, got.ClassID)
		assert.Equal(t, data.SessionID, got.SessionID)
	})

	t.Run("deactivated class makes context unresolvable", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		data := factory.CreateSchoolData(t)
		feeID := factory.CreateFee(t, data.ClassID, data.SessionID, data.OrganizationUID,
			1000, time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), models.FeeStatusNotStarted, true)

		_, err := storage.DB.Exec("UPDATE classes SET is_active = false WHERE id = $1", data.ClassID)
		require.NoError(t, err)

		got, err := storage.ResolveFeeContext(context.Background(), feeID)
		require.Error(t, err)
		assert.Nil(t, got)
	})
}
