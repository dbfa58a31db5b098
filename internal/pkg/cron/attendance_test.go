package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type purgeRepo struct {
	attendance.AttendanceRepository
	before  []civil.Date
	deleted int64
	err     error
}

func (r *purgeRepo) DeleteBefore(_ context.Context, before civil.Date) (int64, error) {
	r.before = append(r.before, before)
	return r.deleted, r.err
}

func fixedClock(t *testing.T, instant time.Time) *clock.Clock {
	t.Helper()
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)
	return clock.NewWithNow(loc, func() time.Time { return instant })
}

func TestRetentionCutoff(t *testing.T) {
	cases := []struct {
		today  civil.Date
		months int
		want   civil.Date
	}{
		{civil.Date{Year: 2024, Month: 3, Day: 15}, 12, civil.Date{Year: 2023, Month: 3, Day: 1}},
		{civil.Date{Year: 2024, Month: 1, Day: 10}, 1, civil.Date{Year: 2023, Month: 12, Day: 1}},
		{civil.Date{Year: 2024, Month: 12, Day: 31}, 0, civil.Date{Year: 2024, Month: 12, Day: 1}},
		{civil.Date{Year: 2024, Month: 2, Day: 29}, 26, civil.Date{Year: 2021, Month: 12, Day: 1}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RetentionCutoff(tc.today, tc.months), "today=%s months=%d", tc.today, tc.months)
	}
}

func TestPurgeExpiredAttendances_UsesOrganizationDate(t *testing.T) {
	repo := &purgeRepo{deleted: 42}
	// 2024-04-01 03:00 UTC is still 2024-03-31 in Guayaquil
	jobs := NewAttendanceJobs(repo, fixedClock(t, time.Date(2024, 4, 1, 3, 0, 0, 0, time.UTC)), 6)

	require.NoError(t, jobs.PurgeExpiredAttendances(context.Background()))
	assert.Equal(t, []civil.Date{{Year: 2023, Month: 9, Day: 1}}, repo.before)
}

func TestPurgeExpiredAttendances_Error(t *testing.T) {
	boom := errors.New("db down")
	repo := &purgeRepo{err: boom}
	jobs := NewAttendanceJobs(repo, fixedClock(t, time.Now()), 6)

	assert.ErrorIs(t, jobs.PurgeExpiredAttendances(context.Background()), boom)
}

func TestRegisterJobs(t *testing.T) {
	repo := &purgeRepo{}

	disabled := NewScheduler(time.UTC)
	require.NoError(t, NewAttendanceJobs(repo, fixedClock(t, time.Now()), 0).RegisterJobs(disabled, "0 3 1 * *"))
	require.NoError(t, disabled.RunOnce(context.Background()))
	assert.Empty(t, repo.before)

	enabled := NewScheduler(time.UTC)
	jobs := NewAttendanceJobs(repo, fixedClock(t, time.Now()), 3)
	require.NoError(t, jobs.RegisterJobs(enabled, "0 3 1 * *"))
	require.NoError(t, enabled.RunOnce(context.Background()))
	assert.Len(t, repo.before, 1)

	assert.Error(t, NewAttendanceJobs(repo, fixedClock(t, time.Now()), 3).RegisterJobs(NewScheduler(nil), "not a spec"))
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC)
	require.NoError(t, s.AddJob("noop", "@every 1h", func(context.Context) error { return nil }))
	s.Start()
	s.Stop()
}
