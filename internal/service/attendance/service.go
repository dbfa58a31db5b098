package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	timesheetsvc "github.com/cmlabs-hris/attendance-backend-go/internal/service/timesheet"
	"github.com/google/uuid"
)

const timestampLayout = "2006-01-02 15:04:05"

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	tx    attendance.Transactor
	clock *clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	tx attendance.Transactor,
	clk *clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		tx:                   tx,
		clock:                clk,
	}
}

// RecordPunch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Event{
		ID:          id.String(),
		EmployeeID:  emp.ID,
		Kind:        req.Kind(),
		RecordedAt:  a.clock.Now(),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		PhotoPath:   req.PhotoPath,
		Observation: req.Observation,
	})
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}
	created.EmployeeName = &emp.FullName

	return mapEventToResponse(created), nil
}

// ListMine implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListMine(ctx context.Context, filter attendance.MyAttendanceFilter) ([]attendance.EventResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	first, err := time.Parse("2006-01", filter.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to parse month: %w", err)
	}
	from := civil.DateOf(first)
	to := civil.DateOf(first.AddDate(0, 1, -1))

	events, err := a.AttendanceRepository.ListByRange(ctx, from, to, &filter.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get my attendance: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, mapEventToResponse(ev))
	}

	return responses, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	events, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, mapEventToResponse(ev))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// UpdateObservation implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateObservation(ctx context.Context, req attendance.UpdateObservationRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	ev, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	ev.Observation = req.Observation
	if err := a.AttendanceRepository.Update(ctx, ev); err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to update observation: %w", err)
	}

	return mapEventToResponse(ev), nil
}

// CorrectDay implements attendance.AttendanceService.
// The day's authoritative entry must exist. Its timestamp and observation
// are rewritten; the exit is rewritten, or created from the entry's
// coordinates and photo when the day has none.
func (a *AttendanceServiceImpl) CorrectDay(ctx context.Context, req attendance.CorrectDayRequest) (attendance.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DayResponse{}, err
	}

	var resp attendance.DayResponse
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
			return err
		}

		day := req.Day()
		events, err := a.AttendanceRepository.ListByRange(ctx, day, day, &req.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to load day: %w", err)
		}

		record, ok := timesheetsvc.Normalize(events)[day]
		if !ok || record.Entry == nil {
			return attendance.ErrEntryNotFound
		}

		entry := *record.Entry
		if req.Entry() != nil {
			entry.RecordedAt = *req.Entry()
		}
		if req.Observation != nil {
			entry.Observation = req.Observation
		}
		if err := a.AttendanceRepository.Update(ctx, entry); err != nil {
			return fmt.Errorf("failed to update entry: %w", err)
		}

		var exit *attendance.Event
		switch {
		case record.Exit != nil && req.Exit() != nil:
			updated := *record.Exit
			updated.RecordedAt = *req.Exit()
			if err := a.AttendanceRepository.Update(ctx, updated); err != nil {
				return fmt.Errorf("failed to update exit: %w", err)
			}
			exit = &updated
		case record.Exit != nil:
			exit = record.Exit
		case req.Exit() != nil:
			created, err := a.synthesizeExit(ctx, entry, *req.Exit())
			if err != nil {
				return err
			}
			exit = &created
		}

		resp = buildDayResponse(req.EmployeeID, day, &entry, exit)
		return nil
	})
	if err != nil {
		return attendance.DayResponse{}, err
	}

	return resp, nil
}

func (a *AttendanceServiceImpl) synthesizeExit(ctx context.Context, entry attendance.Event, at civil.DateTime) (attendance.Event, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Event{
		ID:         id.String(),
		EmployeeID: entry.EmployeeID,
		Kind:       attendance.KindExit,
		RecordedAt: at,
		Latitude:   entry.Latitude,
		Longitude:  entry.Longitude,
		PhotoPath:  entry.PhotoPath,
	})
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create exit: %w", err)
	}

	return created, nil
}

// DeleteRange implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteRange(ctx context.Context, req attendance.DeleteRangeRequest) (attendance.DeleteRangeResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.DeleteRangeResponse{}, err
	}

	deleted, err := a.AttendanceRepository.DeleteRange(ctx, req.Start(), req.End())
	if err != nil {
		return attendance.DeleteRangeResponse{}, fmt.Errorf("failed to delete attendances: %w", err)
	}

	return attendance.DeleteRangeResponse{DeletedRecords: deleted}, nil
}

func buildDayResponse(employeeID string, day civil.Date, entry, exit *attendance.Event) attendance.DayResponse {
	resp := attendance.DayResponse{
		EmployeeID: employeeID,
		Date:       day.String(),
	}

	if entry != nil {
		r := mapEventToResponse(*entry)
		resp.Entry = &r
	}
	if exit != nil {
		r := mapEventToResponse(*exit)
		resp.Exit = &r
	}

	if entry != nil && exit != nil {
		ot := timesheetsvc.CalculateOvertime(&entry.RecordedAt, &exit.RecordedAt, timesheetsvc.Weekday(day))
		resp.WorkedMinutes = ot.WorkedMinutes
		resp.Premium50Minutes = ot.Premium50Minutes
		resp.Premium100Minutes = ot.Premium100Minutes
		resp.Anomaly = !exit.RecordedAt.After(entry.RecordedAt)
	}

	return resp
}

// mapEventToResponse converts an Event entity to EventResponse
func mapEventToResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:           ev.ID,
		EmployeeID:   ev.EmployeeID,
		EmployeeName: ev.EmployeeName,
		Type:         ev.Kind,
		RecordedAt:   ev.RecordedAt.In(time.UTC).Format(timestampLayout),
		Date:         ev.RecordedAt.Date.String(),
		Latitude:     ev.Latitude,
		Longitude:    ev.Longitude,
		PhotoPath:    ev.PhotoPath,
		Observation:  ev.Observation,
		CreatedAt:    ev.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    ev.UpdatedAt.Format(time.RFC3339),
	}
}
