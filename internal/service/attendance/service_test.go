package attendance

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryAttendanceRepo struct {
	events map[string]attendance.Event
	failOn string
}

func newMemoryAttendanceRepo(events ...attendance.Event) *memoryAttendanceRepo {
	r := &memoryAttendanceRepo{events: map[string]attendance.Event{}}
	for _, ev := range events {
		r.events[ev.ID] = ev
	}
	return r
}

func (r *memoryAttendanceRepo) Create(ctx context.Context, ev attendance.Event) (attendance.Event, error) {
	if r.failOn == "create" {
		return attendance.Event{}, errors.New("insert failed")
	}
	ev.CreatedAt = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	ev.UpdatedAt = ev.CreatedAt
	r.events[ev.ID] = ev
	return ev, nil
}

func (r *memoryAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	ev, ok := r.events[id]
	if !ok {
		return attendance.Event{}, attendance.ErrAttendanceNotFound
	}
	return ev, nil
}

func (r *memoryAttendanceRepo) Update(ctx context.Context, ev attendance.Event) error {
	if _, ok := r.events[ev.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.events[ev.ID] = ev
	return nil
}

func (r *memoryAttendanceRepo) sorted() []attendance.Event {
	out := make([]attendance.Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		if out[i].RecordedAt != out[j].RecordedAt {
			return out[i].RecordedAt.Before(out[j].RecordedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryAttendanceRepo) ListByRange(ctx context.Context, from, to civil.Date, employeeID *string) ([]attendance.Event, error) {
	var out []attendance.Event
	for _, ev := range r.sorted() {
		d := ev.RecordedAt.Date
		if d.Before(from) || d.After(to) {
			continue
		}
		if employeeID != nil && ev.EmployeeID != *employeeID {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (r *memoryAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Event, int64, error) {
	all := r.sorted()
	start := min((filter.Page-1)*filter.Limit, len(all))
	end := min(start+filter.Limit, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *memoryAttendanceRepo) DeleteRange(ctx context.Context, from, to civil.Date) (int64, error) {
	var n int64
	for id, ev := range r.events {
		if !ev.RecordedAt.Date.Before(from) && !ev.RecordedAt.Date.After(to) {
			delete(r.events, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryAttendanceRepo) DeleteBefore(ctx context.Context, before civil.Date) (int64, error) {
	return r.DeleteRange(ctx, civil.Date{Year: 1, Month: 1, Day: 1}, before.AddDays(-1))
}

type memoryEmployeeRepo map[string]employee.Employee

func (m memoryEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := m[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m memoryEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range m {
		out = append(out, emp)
	}
	return out, nil
}

type inlineTx struct{ calls int }

func (t *inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var employees = memoryEmployeeRepo{
	"emp-1": {ID: "emp-1", FullName: "Ana Torres", EmploymentStatus: employee.EmploymentStatusActive},
}

func fixedClock(t *testing.T) *clock.Clock {
	t.Helper()
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)
	// 2024-03-05 01:30 UTC is 2024-03-04 20:30 in Guayaquil.
	return clock.NewWithNow(loc, func() time.Time {
		return time.Date(2024, 3, 5, 1, 30, 0, 0, time.UTC)
	})
}

func event(id string, kind attendance.Kind, y int, m time.Month, d, hh, mm int) attendance.Event {
	lat, lng := -2.17, -79.92
	photo := "attendances/" + id + ".jpg"
	return attendance.Event{
		ID:         id,
		EmployeeID: "emp-1",
		Kind:       kind,
		RecordedAt: civil.DateTime{Date: civil.Date{Year: y, Month: m, Day: d}, Time: civil.Time{Hour: hh, Minute: mm}},
		Latitude:   &lat,
		Longitude:  &lng,
		PhotoPath:  &photo,
	}
}

func TestRecordPunch(t *testing.T) {
	repo := newMemoryAttendanceRepo()
	svc := NewAttendanceService(repo, employees, &inlineTx{}, fixedClock(t))

	resp, err := svc.RecordPunch(context.Background(), attendance.RecordPunchRequest{
		EmployeeID: "emp-1",
		Type:       "Entrada",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.KindEntry, resp.Type)
	assert.Equal(t, "2024-03-04 20:30:00", resp.RecordedAt)
	assert.Equal(t, "2024-03-04", resp.Date)
	assert.True(t, validator.IsValidUUID(resp.ID))
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, "Ana Torres", *resp.EmployeeName)
	assert.Len(t, repo.events, 1)
}

func TestRecordPunch_Validation(t *testing.T) {
	svc := NewAttendanceService(newMemoryAttendanceRepo(), employees, &inlineTx{}, fixedClock(t))
	lat := 12.0

	_, err := svc.RecordPunch(context.Background(), attendance.RecordPunchRequest{
		EmployeeID: "emp-1",
		Type:       "lunch",
		Latitude:   &lat,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "latitude")
}

func TestRecordPunch_UnknownEmployee(t *testing.T) {
	svc := NewAttendanceService(newMemoryAttendanceRepo(), employees, &inlineTx{}, fixedClock(t))

	_, err := svc.RecordPunch(context.Background(), attendance.RecordPunchRequest{EmployeeID: "ghost", Type: "exit"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListMine(t *testing.T) {
	repo := newMemoryAttendanceRepo(
		event("a", attendance.KindEntry, 2024, 2, 29, 8, 0),
		event("b", attendance.KindEntry, 2024, 3, 1, 8, 0),
		event("c", attendance.KindExit, 2024, 3, 31, 17, 0),
	)
	svc := NewAttendanceService(repo, employees, &inlineTx{}, fixedClock(t))

	got, err := svc.ListMine(context.Background(), attendance.MyAttendanceFilter{EmployeeID: "emp-1", Month: "2024-03"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	_, err = svc.ListMine(context.Background(), attendance.MyAttendanceFilter{EmployeeID: "emp-1", Month: "March"})
	assert.Error(t, err)
}

func TestList_Pagination(t *testing.T) {
	repo := newMemoryAttendanceRepo(
		event("a", attendance.KindEntry, 2024, 3, 1, 8, 0),
		event("b", attendance.KindExit, 2024, 3, 1, 17, 0),
		event("c", attendance.KindEntry, 2024, 3, 2, 8, 0),
	)
	svc := NewAttendanceService(repo, employees, &inlineTx{}, fixedClock(t))

	got, err := svc.List(context.Background(), attendance.AttendanceFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.TotalCount)
	assert.Equal(t, 2, got.TotalPages)
	assert.Equal(t, "3-3 of 3", got.Showing)
	require.Len(t, got.Attendances, 1)
	assert.Equal(t, "c", got.Attendances[0].ID)

	empty, err := NewAttendanceService(newMemoryAttendanceRepo(), employees, &inlineTx{}, fixedClock(t)).
		List(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", empty.Showing)
	assert.Equal(t, attendance.DefaultPageLimit, empty.Limit)
}

func TestUpdateObservation(t *testing.T) {
	repo := newMemoryAttendanceRepo(event("a", attendance.KindEntry, 2024, 3, 1, 8, 0))
	svc := NewAttendanceService(repo, employees, &inlineTx{}, fixedClock(t))
	obs := "olvidó marcar"

	resp, err := svc.UpdateObservation(context.Background(), attendance.UpdateObservationRequest{ID: "a", Observation: &obs})
	require.NoError(t, err)
	assert.Equal(t, "olvidó marcar", *resp.Observation)
	assert.Equal(t, "olvidó marcar", *repo.events["a"].Observation)

	_, err = svc.UpdateObservation(context.Background(), attendance.UpdateObservationRequest{ID: "missing", Observation: &obs})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestCorrectDay_SynthesizesMissingExit(t *testing.T) {
	entry := event("in", attendance.KindEntry, 2024, 3, 4, 8, 10)
	repo := newMemoryAttendanceRepo(entry)
	tx := &inlineTx{}
	svc := NewAttendanceService(repo, employees, tx, fixedClock(t))

	entryTime, exitTime, obs := "08:00", "19:30", "olvidó marcar salida"
	resp, err := svc.CorrectDay(context.Background(), attendance.CorrectDayRequest{
		EmployeeID:  "emp-1",
		Date:        "2024-03-04",
		EntryTime:   &entryTime,
		ExitTime:    &exitTime,
		Observation: &obs,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)

	require.Len(t, repo.events, 2)
	require.NotNil(t, resp.Exit)
	exit := repo.events[resp.Exit.ID]
	assert.Equal(t, attendance.KindExit, exit.Kind)
	assert.Equal(t, entry.Latitude, exit.Latitude)
	assert.Equal(t, entry.Longitude, exit.Longitude)
	assert.Equal(t, entry.PhotoPath, exit.PhotoPath)
	assert.Equal(t, "2024-03-04 19:30:00", resp.Exit.RecordedAt)

	updated := repo.events["in"]
	assert.Equal(t, civil.Time{Hour: 8}, updated.RecordedAt.Time)
	assert.Equal(t, "olvidó marcar salida", *updated.Observation)

	assert.Equal(t, 690, resp.WorkedMinutes)
	assert.Equal(t, 90, resp.Premium50Minutes)
	assert.False(t, resp.Anomaly)
}

func TestCorrectDay_UpdatesAuthoritativePunches(t *testing.T) {
	repo := newMemoryAttendanceRepo(
		event("in-early", attendance.KindEntry, 2024, 3, 4, 7, 50),
		event("in-late", attendance.KindEntry, 2024, 3, 4, 8, 30),
		event("out-early", attendance.KindExit, 2024, 3, 4, 12, 0),
		event("out-late", attendance.KindExit, 2024, 3, 4, 17, 0),
	)
	svc := NewAttendanceService(repo, employees, &inlineTx{}, fixedClock(t))

	exitTime := "2024-03-04 19:00:00"
	resp, err := svc.CorrectDay(context.Background(), attendance.CorrectDayRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-04",
		ExitTime:   &exitTime,
	})
	require.NoError(t, err)

	assert.Len(t, repo.events, 4)
	assert.Equal(t, civil.Time{Hour: 19}, repo.events["out-late"].RecordedAt.Time)
	assert.Equal(t, civil.Time{Hour: 12}, repo.events["out-early"].RecordedAt.Time)
	assert.Equal(t, "in-early", resp.Entry.ID)
	assert.Equal(t, "out-late", resp.Exit.ID)
	// 18:00-19:00 at 50%
	assert.Equal(t, 60, resp.Premium50Minutes)
	assert.Zero(t, resp.Premium100Minutes)
}

func TestCorrectDay_RejectsTimesOnAnotherDate(t *testing.T) {
	repo := newMemoryAttendanceRepo(event("in", attendance.KindEntry, 2024, 3, 4, 22, 0))
	tx := &inlineTx{}
	svc := NewAttendanceService(repo, employees, tx, fixedClock(t))
	ctx := context.Background()

	for _, exitTime := range []string{"2024-03-05 02:00:00", "2024-03-03 23:00:00"} {
		_, err := svc.CorrectDay(ctx, attendance.CorrectDayRequest{
			EmployeeID: "emp-1",
			Date:       "2024-03-04",
			ExitTime:   &exitTime,
		})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs, exitTime)
		assert.Contains(t, verrs.ToMap(), "exit_time", exitTime)
	}

	entryTime := "2024-03-05 06:00:00"
	_, err := svc.CorrectDay(ctx, attendance.CorrectDayRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-04",
		EntryTime:  &entryTime,
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "entry_time")

	assert.Zero(t, tx.calls)
	require.Len(t, repo.events, 1)
	assert.Equal(t, civil.Time{Hour: 22}, repo.events["in"].RecordedAt.Time)
}

func TestCorrectDay_ReportsAnomaly(t *testing.T) {
	repo := newMemoryAttendanceRepo(
		event("in", attendance.KindEntry, 2024, 3, 4, 8, 0),
		event("out", attendance.KindExit, 2024, 3, 4, 17, 0),
	)
	svc := NewAttendanceService(repo, employees, &inlineTx{}, fixedClock(t))

	entryTime := "18:00"
	resp, err := svc.CorrectDay(context.Background(), attendance.CorrectDayRequest{
		EmployeeID: "emp-1",
		Date:       "2024-03-04",
		EntryTime:  &entryTime,
	})
	require.NoError(t, err)
	assert.True(t, resp.Anomaly)
	assert.Zero(t, resp.WorkedMinutes)
}

func TestCorrectDay_Errors(t *testing.T) {
	svc := NewAttendanceService(
		newMemoryAttendanceRepo(event("out", attendance.KindExit, 2024, 3, 4, 17, 0)),
		employees, &inlineTx{}, fixedClock(t),
	)
	ctx := context.Background()
	entryTime := "08:00"

	_, err := svc.CorrectDay(ctx, attendance.CorrectDayRequest{EmployeeID: "emp-1", Date: "2024-03-04", EntryTime: &entryTime})
	assert.ErrorIs(t, err, attendance.ErrEntryNotFound)

	_, err = svc.CorrectDay(ctx, attendance.CorrectDayRequest{EmployeeID: "emp-1", Date: "2024-03-04"})
	assert.ErrorIs(t, err, attendance.ErrNothingToCorrect)

	_, err = svc.CorrectDay(ctx, attendance.CorrectDayRequest{EmployeeID: "ghost", Date: "2024-03-04", EntryTime: &entryTime})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	bad := "25:00"
	_, err = svc.CorrectDay(ctx, attendance.CorrectDayRequest{EmployeeID: "emp-1", Date: "2024-02-30", EntryTime: &bad})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "date")
	assert.Contains(t, verrs.ToMap(), "entry_time")
}

func TestDeleteRange(t *testing.T) {
	repo := newMemoryAttendanceRepo(
		event("a", attendance.KindEntry, 2024, 3, 1, 8, 0),
		event("b", attendance.KindEntry, 2024, 3, 2, 8, 0),
		event("c", attendance.KindEntry, 2024, 3, 3, 8, 0),
	)
	svc := NewAttendanceService(repo, employees, &inlineTx{}, fixedClock(t))

	resp, err := svc.DeleteRange(context.Background(), attendance.DeleteRangeRequest{StartDate: "2024-03-01", EndDate: "2024-03-02"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.DeletedRecords)
	assert.Len(t, repo.events, 1)

	_, err = svc.DeleteRange(context.Background(), attendance.DeleteRangeRequest{StartDate: "2024-03-05", EndDate: "2024-03-01"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, attendance.ErrInvalidDateRange.Error(), verrs.ToMap()["start_date"])
}
