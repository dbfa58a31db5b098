package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
)

type AttendanceJobs struct {
	attendanceRepo  attendance.AttendanceRepository
	clock           *clock.Clock
	retentionMonths int
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, clk *clock.Clock, retentionMonths int) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo:  attendanceRepo,
		clock:           clk,
		retentionMonths: retentionMonths,
	}
}

// RegisterJobs is a no-op when retention is disabled.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	if j.retentionMonths <= 0 {
		slog.Info("Cron: attendance retention disabled")
		return nil
	}
	return scheduler.AddJob("purge_expired_attendances", spec, j.PurgeExpiredAttendances)
}

// RetentionCutoff is the first day of the oldest month still kept: with
// 12 months on 2024-03-15 everything before 2023-03-01 goes.
func RetentionCutoff(today civil.Date, months int) civil.Date {
	total := today.Year*12 + int(today.Month) - 1 - months
	return civil.Date{Year: total / 12, Month: time.Month(total%12 + 1), Day: 1}
}

func (j *AttendanceJobs) PurgeExpiredAttendances(ctx context.Context) error {
	cutoff := RetentionCutoff(j.clock.Today(), j.retentionMonths)

	deleted, err := j.attendanceRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge attendances before %s: %w", cutoff, err)
	}

	slog.Info("Cron: purged expired attendances", "before", cutoff.String(), "deleted", deleted)
	return nil
}
