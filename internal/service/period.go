package service

import "time"

// Budgets and transaction dates are bucketed into months in UTC.

// MonthWindow returns the half-open window [start, end) of a zero based month.
func MonthWindow(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// PeriodOf returns the zero based month and the year t falls in.
func PeriodOf(t time.Time) (int, int) {
	utc := t.UTC()
	return int(utc.Month()) - 1, utc.Year()
}

func validatePeriod(month, year int) error {
	if month < 0 || month > 11 || year < 1970 || year > 9999 {
		return ErrInvalidPeriod
	}
	return nil
}
