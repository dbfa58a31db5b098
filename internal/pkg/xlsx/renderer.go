package xlsx

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/timesheet"
	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	titleRow     = 3
	titleEndRow  = 4
	monthRow     = 5
	headerRow    = 6
	headerEndRow = 7
	// FirstDataRow is the 1-based sheet row of plan row 0.
	FirstDataRow = headerEndRow + 1

	maxSheetName  = 31
	longSheetName = 30
	shortenedName = 25

	paperA4 = 9
)

var columnWidths = [timesheet.ColumnCount]float64{3, 10, 25, 15, 12, 15, 25, 15, 15, 15, 15, 15, 35}

var ErrEmptyReport = errors.New("report has no sheets to render")

type styles struct {
	title  int
	header int
	cell   int
	label  int
	line   int
}

// Render writes every sheet of the report into a new workbook, one
// worksheet per employee in report order.
func Render(report timesheet.Report) (*bytes.Buffer, error) {
	if len(report.Sheets) == 0 {
		return nil, ErrEmptyReport
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	names := SheetNames(report.Sheets)
	labels := report.Locale.Labels()

	for i, sheet := range report.Sheets {
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}

		if err := renderSheet(f, name, sheet, report.MonthName, labels, st); err != nil {
			return nil, fmt.Errorf("render sheet %q: %w", name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	centered := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}

	var st styles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: centered,
		Border:    border,
	}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: centered,
		Border:    border,
	}); err != nil {
		return st, err
	}
	if st.cell, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    border,
	}); err != nil {
		return st, err
	}
	if st.label, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return st, err
	}
	if st.line, err = f.NewStyle(&excelize.Style{
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	}); err != nil {
		return st, err
	}
	return st, nil
}

func renderSheet(f *excelize.File, name string, sheet timesheet.Sheet, monthName string, labels timesheet.Labels, st styles) error {
	lastCol := timesheet.ColumnCount - 1

	// title block B3:M4
	if err := f.SetCellValue(name, cell(timesheet.ColWeek, titleRow), labels.Title); err != nil {
		return err
	}
	if err := mergeStyled(f, name, timesheet.ColWeek, titleRow, lastCol, titleEndRow, st.title); err != nil {
		return err
	}

	if err := f.SetCellValue(name, cell(timesheet.ColWeek, monthRow), labels.Month); err != nil {
		return err
	}
	if err := f.SetCellValue(name, cell(timesheet.ColEmployee, monthRow), monthName); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, cell(timesheet.ColWeek, monthRow), cell(timesheet.ColEmployee, monthRow), st.label); err != nil {
		return err
	}

	// two-row headers, each merged vertically
	for i, h := range labels.Headers {
		col := timesheet.ColWeek + i
		if err := f.SetCellValue(name, cell(col, headerRow), h); err != nil {
			return err
		}
		if err := mergeStyled(f, name, col, headerRow, col, headerEndRow, st.header); err != nil {
			return err
		}
	}

	for i, row := range sheet.Rows {
		cells := row.Cells()
		values := make([]interface{}, len(cells))
		for j, v := range cells {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell(0, FirstDataRow+i), &values); err != nil {
			return err
		}
	}

	if n := len(sheet.Rows); n > 0 {
		first := cell(timesheet.ColWeek, FirstDataRow)
		last := cell(lastCol, FirstDataRow+n-1)
		if err := f.SetCellStyle(name, first, last, st.cell); err != nil {
			return err
		}

		if err := mergeRegion(f, name, sheet.EmployeeRegion); err != nil {
			return err
		}
		for _, r := range sheet.WeekRegions {
			if err := mergeRegion(f, name, r); err != nil {
				return err
			}
		}
	}

	for _, sig := range sheet.Signatures {
		lr := sig.LabelRegion
		if err := f.SetCellValue(name, cell(lr.FirstCol, FirstDataRow+lr.FirstRow), sig.Label); err != nil {
			return err
		}
		if err := mergeRegion(f, name, lr); err != nil {
			return err
		}
		if err := styleRegion(f, name, lr, st.label); err != nil {
			return err
		}
		if err := mergeRegion(f, name, sig.LineRegion); err != nil {
			return err
		}
		if err := styleRegion(f, name, sig.LineRegion, st.line); err != nil {
			return err
		}
	}

	for i, w := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return err
		}
	}

	return pageSetup(f, name)
}

func pageSetup(f *excelize.File, name string) error {
	size := paperA4
	orientation := "landscape"
	fitWidth, fitHeight := 1, 0
	if err := f.SetPageLayout(name, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
		FitToWidth:  &fitWidth,
		FitToHeight: &fitHeight,
	}); err != nil {
		return err
	}

	fit := true
	if err := f.SetSheetProps(name, &excelize.SheetPropsOptions{FitToPage: &fit}); err != nil {
		return err
	}

	margin, headerFooter := 0.2, 0.3
	return f.SetPageMargins(name, &excelize.PageLayoutMarginsOptions{
		Left:   &margin,
		Right:  &margin,
		Top:    &margin,
		Bottom: &margin,
		Header: &headerFooter,
		Footer: &headerFooter,
	})
}

// cell converts a 0-based column index and a 1-based row to "B8" style.
func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		panic(fmt.Sprintf("xlsx: invalid coordinates col=%d row=%d", col, row))
	}
	return name
}

func mergeStyled(f *excelize.File, sheet string, c1, r1, c2, r2, style int) error {
	if err := f.MergeCell(sheet, cell(c1, r1), cell(c2, r2)); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell(c1, r1), cell(c2, r2), style)
}

func mergeRegion(f *excelize.File, sheet string, r timesheet.Region) error {
	if r.FirstRow == r.LastRow && r.FirstCol == r.LastCol {
		return nil
	}
	return f.MergeCell(sheet,
		cell(r.FirstCol, FirstDataRow+r.FirstRow),
		cell(r.LastCol, FirstDataRow+r.LastRow),
	)
}

func styleRegion(f *excelize.File, sheet string, r timesheet.Region, style int) error {
	return f.SetCellStyle(sheet,
		cell(r.FirstCol, FirstDataRow+r.FirstRow),
		cell(r.LastCol, FirstDataRow+r.LastRow),
		style,
	)
}

// SheetNames derives a valid, unique worksheet name for every sheet from
// the employee name. Names longer than 30 characters keep their first 25.
func SheetNames(sheets []timesheet.Sheet) []string {
	names := make([]string, len(sheets))
	used := make(map[string]bool, len(sheets))

	for i, s := range sheets {
		base := sanitizeSheetName(s.EmployeeName)
		if base == "" {
			base = fmt.Sprintf("Sheet%d", i+1)
		}

		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncateRunes(base, maxSheetName-utf8.RuneCountInString(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[i] = name
	}

	return names
}

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

func sanitizeSheetName(s string) string {
	s = strings.TrimSpace(sheetNameReplacer.Replace(s))
	s = strings.Trim(s, "'")
	if utf8.RuneCountInString(s) > longSheetName {
		s = strings.TrimSpace(truncateRunes(s, shortenedName))
	}
	return s
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
