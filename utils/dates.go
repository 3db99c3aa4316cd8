// utils/dates.go
package utils

import (
	"errors"
	"time"
)

// ReportWindow is a half-open date range [Start, End): inclusive of the first
// day, exclusive of the instant after end-of-day on the last one.
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// Days is the number of calendar days covered by the window.
func (w ReportWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// Contains reports whether t falls inside the window.
func (w ReportWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// WindowForPeriod resolves a named period to a concrete window relative to
// now. Named periods always end after today; custom ranges take explicit
// startDate/endDate in YYYY-MM-DD form.
func WindowForPeriod(period, startDate, endDate string, now time.Time) (ReportWindow, error) {
	today := BeginningOfDay(now)
	end := today.AddDate(0, 0, 1)

	switch period {
	case "", "today":
		return ReportWindow{Start: today, End: end}, nil
	case "7days":
		return ReportWindow{Start: today.AddDate(0, 0, -6), End: end}, nil
	case "month":
		return ReportWindow{
			Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
			End:   end,
		}, nil
	case "3months":
		return ReportWindow{Start: today.AddDate(0, -3, 0), End: end}, nil
	case "year":
		return ReportWindow{
			Start: time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location()),
			End:   end,
		}, nil
	case "custom":
		if startDate == "" || endDate == "" {
			return ReportWindow{}, errors.New("custom period requires startDate and endDate")
		}
		start, err := time.ParseInLocation("2006-01-02", startDate, now.Location())
		if err != nil {
			return ReportWindow{}, errors.New("invalid startDate, expected YYYY-MM-DD")
		}
		last, err := time.ParseInLocation("2006-01-02", endDate, now.Location())
		if err != nil {
			return ReportWindow{}, errors.New("invalid endDate, expected YYYY-MM-DD")
		}
		if last.Before(start) {
			return ReportWindow{}, errors.New("endDate must not precede startDate")
		}
		return ReportWindow{Start: start, End: last.AddDate(0, 0, 1)}, nil
	default:
		return ReportWindow{}, errors.New("unknown period: " + period)
	}
}
