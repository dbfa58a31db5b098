package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Monthly timesheet plans as JSON
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)

	// Monthly timesheet workbook download
	ExportMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService timesheet.ReportService
}

func NewReportHandler(reportService timesheet.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func reportRequestFromQuery(r *http.Request) timesheet.ReportRequest {
	req := timesheet.ReportRequest{
		Month: r.URL.Query().Get("month"),
	}
	if employeeID := r.URL.Query().Get("user_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	return req
}

// GetMonthlyReport handles GET /admin/attendances/report
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.BuildReport(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlyReport handles GET /admin/attendances/export
func (h *reportHandlerImpl) ExportMonthlyReport(w http.ResponseWriter, r *http.Request) {
	workbook, err := h.reportService.ExportWorkbook(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, workbook.Filename, workbook.ContentType, workbook.Content)
}
