package timesheet

import (
	"fmt"
	"strings"
	"time"
)

// Locale selects the language of every human-readable label in a report.
// The engine itself works on time.Weekday and time.Month.
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocaleES:
		return LocaleES, nil
	case LocaleEN:
		return LocaleEN, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidLocale, s)
}

var weekdayNames = map[Locale][7]string{
	LocaleES: {"DOMINGO", "LUNES", "MARTES", "MIÉRCOLES", "JUEVES", "VIERNES", "SÁBADO"},
	LocaleEN: {"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"},
}

var monthNames = map[Locale][12]string{
	LocaleES: {"ENERO", "FEBRERO", "MARZO", "ABRIL", "MAYO", "JUNIO",
		"JULIO", "AGOSTO", "SEPTIEMBRE", "OCTUBRE", "NOVIEMBRE", "DICIEMBRE"},
	LocaleEN: {"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE",
		"JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER"},
}

// Labels holds the fixed texts of the sheet layout.
type Labels struct {
	Title        string
	Month        string
	Headers      [ColumnCount - 1]string
	AuthorizedBy string
	ApprovedBy   string
	Filename     string
}

var labels = map[Locale]Labels{
	LocaleES: {
		Title: "REGISTRO ASISTENCIA REPORTE INGRESO Y SALIDA",
		Month: "MES:",
		Headers: [ColumnCount - 1]string{
			"SEMAN NRO.", "COLABORADOR", "DIA", "FECHA", "HORA DE INGRESO", "LUGAR",
			"HORA DE SALIDA", "HORAS TRABAJADAS", "HORAS CONTRATO", "HORAS EXTRAS 50%",
			"HORAS EXTRAS AL 100%", "OBSERVACIONES",
		},
		AuthorizedBy: "Autorizado por:",
		ApprovedBy:   "Aprobado por:",
		Filename:     "REPORTE ASISTENCIA",
	},
	LocaleEN: {
		Title: "ATTENDANCE RECORD ENTRY AND EXIT REPORT",
		Month: "MONTH:",
		Headers: [ColumnCount - 1]string{
			"WEEK NO.", "EMPLOYEE", "DAY", "DATE", "ENTRY TIME", "LOCATION",
			"EXIT TIME", "HOURS WORKED", "CONTRACT HOURS", "OVERTIME 50%",
			"OVERTIME 100%", "OBSERVATIONS",
		},
		AuthorizedBy: "Authorized by:",
		ApprovedBy:   "Approved by:",
		Filename:     "ATTENDANCE REPORT",
	},
}

func (l Locale) names() Locale {
	if _, ok := weekdayNames[l]; ok {
		return l
	}
	return LocaleES
}

// WeekdayName panics on a value outside Sunday..Saturday: the calendar
// never produces one, so reaching it means a bug upstream.
func (l Locale) WeekdayName(w time.Weekday) string {
	if w < time.Sunday || w > time.Saturday {
		panic(fmt.Sprintf("timesheet: weekday %d out of range", int(w)))
	}
	return weekdayNames[l.names()][w]
}

func (l Locale) MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		panic(fmt.Sprintf("timesheet: month %d out of range", int(m)))
	}
	return monthNames[l.names()][m-1]
}

func (l Locale) Labels() Labels {
	return labels[l.names()]
}
