package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/xlsx"
	locationsvc "github.com/cmlabs-hris/attendance-backend-go/internal/service/location"
	timesheetsvc "github.com/cmlabs-hris/attendance-backend-go/internal/service/timesheet"
	"golang.org/x/sync/errgroup"
)

const DefaultParallelism = 4

type Options struct {
	Locale      timesheet.Locale
	Parallelism int
}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	locationRepo   location.LocationRepository
	clock          *clock.Clock
	locale         timesheet.Locale
	parallelism    int
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	locationRepo location.LocationRepository,
	clk *clock.Clock,
	opts Options,
) timesheet.ReportService {
	if opts.Parallelism <= 0 {
		opts.Parallelism = DefaultParallelism
	}
	if opts.Locale == "" {
		opts.Locale = timesheet.LocaleES
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		locationRepo:   locationRepo,
		clock:          clk,
		locale:         opts.Locale,
		parallelism:    opts.Parallelism,
	}
}

// BuildReport fetches the month's events once and runs the per-employee
// pipeline concurrently. Sheets keep the employee directory order.
func (s *ReportServiceImpl) BuildReport(ctx context.Context, req timesheet.ReportRequest) (timesheet.Report, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Report{}, err
	}
	period := req.Period()

	employees, err := s.loadEmployees(ctx, req.EmployeeID)
	if err != nil {
		return timesheet.Report{}, err
	}

	events, err := s.attendanceRepo.ListByRange(ctx, period.First(), period.Last(), req.EmployeeID)
	if err != nil {
		return timesheet.Report{}, fmt.Errorf("failed to load attendance events: %w", err)
	}
	byEmployee := timesheetsvc.GroupByEmployee(events)

	resolver, err := locationsvc.LoadResolver(ctx, s.locationRepo)
	if err != nil {
		return timesheet.Report{}, err
	}

	sheets := make([]timesheet.Sheet, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	for i, emp := range employees {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			sheet, err := timesheetsvc.BuildSheet(emp, period, byEmployee[emp.ID], s.locale, resolver)
			if err != nil {
				return fmt.Errorf("failed to build sheet for employee %s: %w", emp.ID, err)
			}
			sheets[i] = sheet
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return timesheet.Report{}, err
	}

	for _, sheet := range sheets {
		if len(sheet.Anomalies) > 0 {
			slog.Warn("timesheet has days with exit not after entry",
				"employee_id", sheet.EmployeeID,
				"period", sheet.Period,
				"days", len(sheet.Anomalies),
			)
		}
	}

	return timesheet.Report{
		Period:      period,
		Month:       period.String(),
		MonthName:   s.locale.MonthName(period.Month),
		Locale:      s.locale,
		GeneratedAt: s.clock.Now().In(time.UTC).Format("2006-01-02 15:04:05"),
		Sheets:      sheets,
	}, nil
}

func (s *ReportServiceImpl) loadEmployees(ctx context.Context, employeeID *string) ([]employee.Employee, error) {
	if employeeID != nil {
		emp, err := s.employeeRepo.GetByID(ctx, *employeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
		return []employee.Employee{emp}, nil
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(employees) == 0 {
		return nil, timesheet.ErrNoEmployees
	}
	return employees, nil
}

// ExportWorkbook renders the report as an XLSX workbook with one worksheet per employee.
func (s *ReportServiceImpl) ExportWorkbook(ctx context.Context, req timesheet.ReportRequest) (timesheet.Workbook, error) {
	report, err := s.BuildReport(ctx, req)
	if err != nil {
		return timesheet.Workbook{}, err
	}

	buf, err := xlsx.Render(report)
	if err != nil {
		return timesheet.Workbook{}, fmt.Errorf("failed to render workbook: %w", err)
	}

	return timesheet.Workbook{
		Filename:    workbookFilename(report, req.EmployeeID != nil),
		ContentType: xlsx.ContentType,
		Content:     buf.Bytes(),
	}, nil
}

// workbookFilename is "<title> <MONTH>.xlsx", suffixed with the employee
// name for single-employee exports.
func workbookFilename(report timesheet.Report, single bool) string {
	name := report.Locale.Labels().Filename + " " + report.MonthName
	if single && len(report.Sheets) == 1 {
		name += "_" + strings.ToUpper(report.Sheets[0].EmployeeName)
	}
	return sanitizeFilename(name) + ".xlsx"
}

var filenameReplacer = strings.NewReplacer(`"`, "", `/`, "-", `\`, "-", "\r", "", "\n", "")

func sanitizeFilename(s string) string {
	return strings.TrimSpace(filenameReplacer.Replace(s))
}
