package timesheet

import "context"

// ReportService assembles monthly timesheets.
type ReportService interface {
	// BuildReport returns the sheet plans of one employee or of every active employee
	BuildReport(ctx context.Context, req ReportRequest) (Report, error)

	// ExportWorkbook renders BuildReport's result as an XLSX file
	ExportWorkbook(ctx context.Context, req ReportRequest) (Workbook, error)
}
