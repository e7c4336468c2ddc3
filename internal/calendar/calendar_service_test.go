package calendar

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	calendarerrors "github.com/fmcmkdict/LMA-App/internal/calendar/errors"
)

func setupCalendarDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Holiday{}))
	return db
}

func setupCalendarService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupCalendarDB(t)
	return NewService(NewRepository(db)), db
}

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := ParseDate(v)
	require.NoError(t, err)
	return d
}

func addHoliday(t *testing.T, svc Service, date, name string) {
	t.Helper()
	_, err := svc.CreateHoliday(context.Background(), CreateHolidayRequest{
		Name: name,
		Date: date,
	})
	require.NoError(t, err)
}

func TestIsWorkingDay(t *testing.T) {
	svc, _ := setupCalendarService(t)
	ctx := context.Background()

	addHoliday(t, svc, "2025-06-05", "Founders Day")

	monday, err := svc.IsWorkingDay(ctx, mustDate(t, "2025-06-02"))
	require.NoError(t, err)
	assert.True(t, monday)

	saturday, err := svc.IsWorkingDay(ctx, mustDate(t, "2025-06-07"))
	require.NoError(t, err)
	assert.False(t, saturday)

	sunday, err := svc.IsWorkingDay(ctx, mustDate(t, "2025-06-08"))
	require.NoError(t, err)
	assert.False(t, sunday)

	holiday, err := svc.IsWorkingDay(ctx, mustDate(t, "2025-06-05"))
	require.NoError(t, err)
	assert.False(t, holiday)
}

func TestCountWorkingDays(t *testing.T) {
	svc, _ := setupCalendarService(t)
	ctx := context.Background()

	t.Run("two full weeks", func(t *testing.T) {
		n, err := svc.CountWorkingDays(ctx, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-13"))
		require.NoError(t, err)
		assert.Equal(t, 10, n)
	})

	t.Run("single working day is inclusive", func(t *testing.T) {
		n, err := svc.CountWorkingDays(ctx, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-02"))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("weekend only", func(t *testing.T) {
		n, err := svc.CountWorkingDays(ctx, mustDate(t, "2025-06-07"), mustDate(t, "2025-06-08"))
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("holiday excluded", func(t *testing.T) {
		addHoliday(t, svc, "2025-06-05", "Founders Day")

		n, err := svc.CountWorkingDays(ctx, mustDate(t, "2025-06-02"), mustDate(t, "2025-06-13"))
		require.NoError(t, err)
		assert.Equal(t, 9, n)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.CountWorkingDays(ctx, mustDate(t, "2025-06-13"), mustDate(t, "2025-06-02"))
		assert.ErrorIs(t, err, calendarerrors.ErrInvalidRange)
	})

	t.Run("span over a year", func(t *testing.T) {
		_, err := svc.CountWorkingDays(ctx, mustDate(t, "2025-01-01"), mustDate(t, "2026-01-03"))
		assert.ErrorIs(t, err, calendarerrors.ErrSpanTooLarge)
	})
}

func TestProjectEndDate(t *testing.T) {
	svc, _ := setupCalendarService(t)
	ctx := context.Background()

	t.Run("ten working days from a monday", func(t *testing.T) {
		end, err := svc.ProjectEndDate(ctx, mustDate(t, "2025-06-02"), 10)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-13", end.Format("2006-01-02"))
	})

	t.Run("zero days returns start", func(t *testing.T) {
		start := mustDate(t, "2025-06-02")
		end, err := svc.ProjectEndDate(ctx, start, 0)
		require.NoError(t, err)
		assert.Equal(t, Normalize(start), end)
	})

	t.Run("holiday pushes the end date", func(t *testing.T) {
		addHoliday(t, svc, "2025-06-05", "Founders Day")

		end, err := svc.ProjectEndDate(ctx, mustDate(t, "2025-06-02"), 10)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-16", end.Format("2006-01-02"))
	})

	t.Run("weekend start begins counting on monday", func(t *testing.T) {
		end, err := svc.ProjectEndDate(ctx, mustDate(t, "2025-06-07"), 1)
		require.NoError(t, err)
		assert.Equal(t, "2025-06-09", end.Format("2006-01-02"))
	})

	t.Run("negative days rejected", func(t *testing.T) {
		_, err := svc.ProjectEndDate(ctx, mustDate(t, "2025-06-02"), -1)
		assert.ErrorIs(t, err, calendarerrors.ErrNegativeDays)
	})

	t.Run("span over a year rejected", func(t *testing.T) {
		_, err := svc.ProjectEndDate(ctx, mustDate(t, "2025-06-02"), MaxSpanDays+1)
		assert.ErrorIs(t, err, calendarerrors.ErrSpanTooLarge)
	})
}

// The projection and the counter agree: counting the working days from
// start to the projected end gives back the requested count.
func TestProjectionMatchesCount(t *testing.T) {
	svc, _ := setupCalendarService(t)
	ctx := context.Background()

	addHoliday(t, svc, "2025-06-05", "Founders Day")
	addHoliday(t, svc, "2025-06-20", "Midsummer")

	start := mustDate(t, "2025-06-02")
	for _, days := range []int{1, 3, 10, 25} {
		end, err := svc.ProjectEndDate(ctx, start, days)
		require.NoError(t, err)

		n, err := svc.CountWorkingDays(ctx, start, end)
		require.NoError(t, err)
		assert.Equal(t, days, n, "days=%d end=%s", days, end.Format("2006-01-02"))
	}
}

func TestCreateHolidayDuplicate(t *testing.T) {
	svc, _ := setupCalendarService(t)

	addHoliday(t, svc, "2025-12-25", "Christmas")

	_, err := svc.CreateHoliday(context.Background(), CreateHolidayRequest{
		Name: "Christmas again",
		Date: "2025-12-25",
	})
	assert.ErrorIs(t, err, calendarerrors.ErrDuplicateHoliday)
}
