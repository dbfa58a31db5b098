package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const eventColumns = `
	a.id, a.employee_id, a.type, a.recorded_at,
	a.latitude, a.longitude, a.photo_path, a.observation,
	a.created_at, a.updated_at`

// recorded_at is a timestamp without time zone holding organization-local
// wall-clock time; it round-trips through time.Time in UTC.
func toTimestamp(dt civil.DateTime) time.Time {
	return dt.In(time.UTC)
}

func dayStart(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func scanEvent(row pgx.Row, withName bool) (attendance.Event, error) {
	var ev attendance.Event
	var kind string
	var recordedAt time.Time

	dest := []interface{}{
		&ev.ID, &ev.EmployeeID, &kind, &recordedAt,
		&ev.Latitude, &ev.Longitude, &ev.PhotoPath, &ev.Observation,
		&ev.CreatedAt, &ev.UpdatedAt,
	}
	if withName {
		dest = append(dest, &ev.EmployeeName)
	}

	if err := row.Scan(dest...); err != nil {
		return attendance.Event{}, err
	}

	ev.Kind = attendance.Kind(kind)
	ev.RecordedAt = civil.DateTimeOf(recordedAt)
	return ev, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, ev attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, employee_id, type, recorded_at,
			latitude, longitude, photo_path, observation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ev.ID,
		ev.EmployeeID,
		string(ev.Kind),
		toTimestamp(ev.RecordedAt),
		ev.Latitude,
		ev.Longitude,
		ev.PhotoPath,
		ev.Observation,
	).Scan(&ev.CreatedAt, &ev.UpdatedAt)
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return ev, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + eventColumns + `, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	ev, err := scanEvent(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return ev, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, ev attendance.Event) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET recorded_at = $2, observation = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, ev.ID, toTimestamp(ev.RecordedAt), ev.Observation)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ListByRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByRange(ctx context.Context, from, to civil.Date, employeeID *string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	where := "a.recorded_at >= $1 AND a.recorded_at < $2"
	args := []interface{}{dayStart(from), dayStart(to.AddDays(1))}
	if employeeID != nil {
		where += " AND a.employee_id = $3"
		args = append(args, *employeeID)
	}

	query := `SELECT ` + eventColumns + `
		FROM attendances a
		WHERE ` + where + `
		ORDER BY a.employee_id, a.recorded_at, a.id
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances by range: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows, false)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return events, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.recorded_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.recorded_at < ($%d::date + 1)", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Month != nil && *filter.Month != "" {
		first, err := time.Parse("2006-01", *filter.Month)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid month filter: %w", err)
		}
		baseWhere += fmt.Sprintf(" AND a.recorded_at >= $%d AND a.recorded_at < $%d", argIdx, argIdx+1)
		args = append(args, first, first.AddDate(0, 1, 0))
		argIdx += 2
	}

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.employee_id, a.recorded_at, a.id
		LIMIT $%d OFFSET $%d
	`, eventColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = attendance.DefaultPageLimit
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanEvent(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return events, total, nil
}

// DeleteRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteRange(ctx context.Context, from, to civil.Date) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM attendances WHERE recorded_at >= $1 AND recorded_at < $2`,
		dayStart(from), dayStart(to.AddDays(1)),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendances: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) DeleteBefore(ctx context.Context, before civil.Date) (int64, error) {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE recorded_at < $1`, dayStart(before))
	if err != nil {
		return 0, fmt.Errorf("failed to purge attendances: %w", err)
	}

	return tag.RowsAffected(), nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
