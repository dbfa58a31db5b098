package timesheet

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
)

// Column indices of a report row. Index 0 is the blank margin column.
const (
	ColMargin = iota
	ColWeek
	ColEmployee
	ColWeekday
	ColDate
	ColEntryTime
	ColEntryLocation
	ColExitTime
	ColWorked
	ColContracted
	ColPremium50
	ColPremium100
	ColObservation

	ColumnCount
)

// DayRecord is the authoritative entry and exit of one employee on one
// calendar day. Either side may be missing.
type DayRecord struct {
	Date    civil.Date
	Weekday time.Weekday
	Entry   *attendance.Event
	Exit    *attendance.Event
}

// OvertimeResult holds minute totals for one day. All values are >= 0.
type OvertimeResult struct {
	WorkedMinutes     int `json:"worked_minutes"`
	RegularMinutes    int `json:"regular_minutes"`
	Premium50Minutes  int `json:"premium_50_minutes"`
	Premium100Minutes int `json:"premium_100_minutes"`
}

// WeekRange spans rows StartRow..EndRow (inclusive) of one employee's rows.
type WeekRange struct {
	Number   int `json:"number"`
	StartRow int `json:"start_row"`
	EndRow   int `json:"end_row"`
}

// Region is an inclusive rectangle of row/column indices relative to the
// first data row of a sheet. Signature rows may lie past the data block.
type Region struct {
	FirstRow int `json:"first_row"`
	LastRow  int `json:"last_row"`
	FirstCol int `json:"first_col"`
	LastCol  int `json:"last_col"`
}

// ReportRow is one fully formatted line of a monthly sheet.
type ReportRow struct {
	Date          civil.Date     `json:"date"`
	WeekLabel     string         `json:"week"`
	EmployeeLabel string         `json:"employee"`
	WeekdayName   string         `json:"weekday"`
	DateLabel     string         `json:"date_label"`
	EntryTime     string         `json:"entry_time"`
	EntryLocation string         `json:"entry_location"`
	ExitTime      string         `json:"exit_time"`
	Worked        string         `json:"worked"`
	Contracted    string         `json:"contracted_hours"`
	Premium50     string         `json:"overtime_50"`
	Premium100    string         `json:"overtime_100"`
	Observation   string         `json:"observation"`
	Overtime      OvertimeResult `json:"minutes"`
	Anomaly       bool           `json:"anomaly"`
}

// Cells returns the row laid out by column index.
func (r ReportRow) Cells() [ColumnCount]string {
	var c [ColumnCount]string
	c[ColWeek] = r.WeekLabel
	c[ColEmployee] = r.EmployeeLabel
	c[ColWeekday] = r.WeekdayName
	c[ColDate] = r.DateLabel
	c[ColEntryTime] = r.EntryTime
	c[ColEntryLocation] = r.EntryLocation
	c[ColExitTime] = r.ExitTime
	c[ColWorked] = r.Worked
	c[ColContracted] = r.Contracted
	c[ColPremium50] = r.Premium50
	c[ColPremium100] = r.Premium100
	c[ColObservation] = r.Observation
	return c
}

// SignatureRow is a label cell region plus the blank region to sign on.
type SignatureRow struct {
	Label       string `json:"label"`
	Row         int    `json:"row"`
	LabelRegion Region `json:"label_region"`
	LineRegion  Region `json:"line_region"`
}

// Sheet is the immutable plan for one employee's month. Renderers only
// read it.
type Sheet struct {
	EmployeeID     string         `json:"user_id"`
	EmployeeName   string         `json:"user_name"`
	Period         string         `json:"month"`
	Rows           []ReportRow    `json:"rows"`
	Weeks          []WeekRange    `json:"weeks"`
	EmployeeRegion Region         `json:"employee_region"`
	WeekRegions    []Region       `json:"week_regions"`
	Signatures     []SignatureRow `json:"signatures"`
	Anomalies      []civil.Date   `json:"anomalies"`
	Totals         OvertimeResult `json:"totals"`
}

// Report bundles the sheets of one month in employee order.
type Report struct {
	Period      Period  `json:"-"`
	Month       string  `json:"month"`
	MonthName   string  `json:"month_name"`
	Locale      Locale  `json:"locale"`
	GeneratedAt string  `json:"generated_at"`
	Sheets      []Sheet `json:"sheets"`
}
