package leave

import "time"

// Settings are the static leave-accounting parameters resolved once at
// startup from configuration.
type Settings struct {
	Weekend      map[time.Weekday]bool
	FYStartMonth time.Month
	FYStartDay   int
}

// DefaultSettings uses a Saturday/Sunday weekend and a calendar-year
// financial year.
func DefaultSettings() Settings {
	return Settings{
		Weekend:      map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
		FYStartMonth: time.January,
		FYStartDay:   1,
	}
}

// WorkingDays counts the calendar days in the inclusive range
// [start, end] whose weekday is not in the weekend set. Callers are
// expected to have validated the range first.
func WorkingDays(start, end time.Time, weekend map[time.Weekday]bool) int {
	start = truncateToDay(start)
	end = truncateToDay(end)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !weekend[d.Weekday()] {
			days++
		}
	}
	return days
}

// FinancialYear returns the financial year a date belongs to: dates
// before the configured MM-DD boundary fall in the previous year.
func FinancialYear(t time.Time, startMonth time.Month, startDay int) int {
	boundary := time.Date(t.Year(), startMonth, startDay, 0, 0, 0, 0, t.Location())
	if t.Before(boundary) {
		return t.Year() - 1
	}
	return t.Year()
}

func (s Settings) WorkingDays(start, end time.Time) int {
	return WorkingDays(start, end, s.Weekend)
}

func (s Settings) FinancialYear(t time.Time) int {
	return FinancialYear(t, s.FYStartMonth, s.FYStartDay)
}

// CurrentFinancialYear is the financial year today falls in.
func (s Settings) CurrentFinancialYear() int {
	return s.FinancialYear(time.Now())
}

// FinancialYearRange returns the inclusive start and exclusive end of a
// financial year.
func (s Settings) FinancialYearRange(year int) (start, end time.Time) {
	start = time.Date(year, s.FYStartMonth, s.FYStartDay, 0, 0, 0, 0, time.Local)
	end = start.AddDate(1, 0, 0)
	return start, end
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
