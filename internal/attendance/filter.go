package attendance

import (
	"fmt"
	"time"
)

// RecordFilter narrows the admin record listing. Zero values mean "no
// constraint".
type RecordFilter struct {
	EmployeeID string
	Date       string // calendar day, YYYY-MM-DD
}

// dayRange expands a YYYY-MM-DD date into the inclusive bounds
// [00:00:00, 23:59:59] of that calendar day in loc. The end bound is the
// calendar instant 23:59:59, not start plus a fixed duration, so the range
// stays correct on DST-transition days that are not 24 hours long.
func dayRange(date string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	end := time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 59, 0, loc)
	return start, end, nil
}
