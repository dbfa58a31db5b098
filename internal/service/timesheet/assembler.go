package timesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/utils"
)

const (
	// rows between the last data row and the first signature row, and
	// between the two signature rows
	signatureGap     = 3
	signatureSpacing = 2

	signatureLabelCols = 2
	signatureLineCols  = 3
)

// LocationResolver names the place an entry punch was recorded at.
type LocationResolver interface {
	Resolve(lat, lng *float64) string
}

type coordinatesOnly struct{}

func (coordinatesOnly) Resolve(lat, lng *float64) string {
	return utils.CoordinatesLabel(lat, lng)
}

// SheetInput carries everything AssembleSheet needs. Nothing is read from
// ambient state.
type SheetInput struct {
	Employee  employee.Employee
	Period    timesheet.Period
	Days      []timesheet.DayRecord
	Locale    timesheet.Locale
	Locations LocationResolver
}

// BuildSheet runs the whole per-employee pipeline: normalize, fill the
// month, assemble.
func BuildSheet(emp employee.Employee, period timesheet.Period, events []attendance.Event, locale timesheet.Locale, locations LocationResolver) (timesheet.Sheet, error) {
	days, err := BuildMonth(period, Normalize(events))
	if err != nil {
		return timesheet.Sheet{}, err
	}

	return AssembleSheet(SheetInput{
		Employee:  emp,
		Period:    period,
		Days:      days,
		Locale:    locale,
		Locations: locations,
	})
}

// AssembleSheet turns a month of DayRecords into formatted rows plus the
// merge and signature layout. It never mutates its input.
func AssembleSheet(in SheetInput) (timesheet.Sheet, error) {
	if err := in.Period.Validate(); err != nil {
		return timesheet.Sheet{}, err
	}
	for _, d := range in.Days {
		if !in.Period.Contains(d.Date) {
			return timesheet.Sheet{}, fmt.Errorf("%w: %s is outside %s", timesheet.ErrInvalidDate, d.Date, in.Period)
		}
	}

	locations := in.Locations
	if locations == nil {
		locations = coordinatesOnly{}
	}

	contracted := ""
	if in.Employee.ContractedHours != nil {
		contracted = in.Employee.ContractedHours.String()
	}

	weeks := PartitionWeeks(in.Days)
	weekLabels := make(map[int]string, len(weeks))
	for _, w := range weeks {
		weekLabels[w.StartRow] = strconv.Itoa(w.Number)
	}

	sheet := timesheet.Sheet{
		EmployeeID:   in.Employee.ID,
		EmployeeName: in.Employee.FullName,
		Period:       in.Period.String(),
		Rows:         make([]timesheet.ReportRow, 0, len(in.Days)),
		Weeks:        weeks,
		WeekRegions:  []timesheet.Region{},
	}

	for i, d := range in.Days {
		row := assembleRow(d, in.Locale, locations)
		row.WeekLabel = weekLabels[i]
		row.Contracted = contracted
		if i == 0 {
			row.EmployeeLabel = strings.ToUpper(in.Employee.FullName)
		}
		if row.Anomaly {
			sheet.Anomalies = append(sheet.Anomalies, d.Date)
		}

		sheet.Totals.WorkedMinutes += row.Overtime.WorkedMinutes
		sheet.Totals.RegularMinutes += row.Overtime.RegularMinutes
		sheet.Totals.Premium50Minutes += row.Overtime.Premium50Minutes
		sheet.Totals.Premium100Minutes += row.Overtime.Premium100Minutes

		sheet.Rows = append(sheet.Rows, row)
	}

	if len(sheet.Rows) == 0 {
		return sheet, nil
	}

	last := len(sheet.Rows) - 1
	sheet.EmployeeRegion = timesheet.Region{
		FirstRow: 0,
		LastRow:  last,
		FirstCol: timesheet.ColEmployee,
		LastCol:  timesheet.ColEmployee,
	}

	for _, w := range weeks {
		if w.EndRow > w.StartRow {
			sheet.WeekRegions = append(sheet.WeekRegions, timesheet.Region{
				FirstRow: w.StartRow,
				LastRow:  w.EndRow,
				FirstCol: timesheet.ColWeek,
				LastCol:  timesheet.ColWeek,
			})
		}
	}

	labels := in.Locale.Labels()
	authRow := last + signatureGap
	sheet.Signatures = []timesheet.SignatureRow{
		signatureRow(labels.AuthorizedBy, authRow),
		signatureRow(labels.ApprovedBy, authRow+signatureSpacing),
	}

	return sheet, nil
}

func assembleRow(d timesheet.DayRecord, locale timesheet.Locale, locations LocationResolver) timesheet.ReportRow {
	row := timesheet.ReportRow{
		Date:        d.Date,
		WeekdayName: locale.WeekdayName(d.Weekday),
		DateLabel:   d.Date.String(),
	}

	if d.Entry != nil {
		row.EntryTime = clockLabel(d.Entry)
		row.EntryLocation = locations.Resolve(d.Entry.Latitude, d.Entry.Longitude)
	}
	if d.Exit != nil {
		row.ExitTime = clockLabel(d.Exit)
	}

	switch {
	case d.Entry.HasObservation():
		row.Observation = *d.Entry.Observation
	case d.Exit.HasObservation():
		row.Observation = *d.Exit.Observation
	}

	if d.Entry == nil || d.Exit == nil {
		return row
	}

	row.Overtime = CalculateOvertime(&d.Entry.RecordedAt, &d.Exit.RecordedAt, d.Weekday)
	if !d.Exit.RecordedAt.After(d.Entry.RecordedAt) {
		row.Anomaly = true
	}

	if row.Overtime.WorkedMinutes > 0 {
		row.Worked = FormatMinutes(row.Overtime.WorkedMinutes)
		row.Premium50 = FormatMinutes(row.Overtime.Premium50Minutes)
		row.Premium100 = FormatMinutes(row.Overtime.Premium100Minutes)
	} else {
		row.Worked = FormatMinutes(0)
	}

	return row
}

func clockLabel(ev *attendance.Event) string {
	return fmt.Sprintf("%02d:%02d", ev.RecordedAt.Time.Hour, ev.RecordedAt.Time.Minute)
}

func signatureRow(label string, row int) timesheet.SignatureRow {
	return timesheet.SignatureRow{
		Label: label,
		Row:   row,
		LabelRegion: timesheet.Region{
			FirstRow: row,
			LastRow:  row,
			FirstCol: timesheet.ColWeek,
			LastCol:  timesheet.ColWeek + signatureLabelCols - 1,
		},
		LineRegion: timesheet.Region{
			FirstRow: row,
			LastRow:  row,
			FirstCol: timesheet.ColWeek + signatureLabelCols,
			LastCol:  timesheet.ColWeek + signatureLabelCols + signatureLineCols - 1,
		},
	}
}
