package attendance

import (
	"testing"
	"time"
)

func TestDayRangeBoundsAreInclusive(t *testing.T) {
	start, end, err := dayRange("2026-03-09", time.UTC)
	if err != nil {
		t.Fatalf("day range: %v", err)
	}
	if !start.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if !end.Equal(time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)) {
		t.Fatalf("unexpected end: %v", end)
	}

	// A record at either bound is inside; the next day's first instant is not.
	midnight := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	lastSecond := time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if midnight.Before(start) || midnight.After(end) {
		t.Fatalf("midnight must be inside the range")
	}
	if lastSecond.Before(start) || lastSecond.After(end) {
		t.Fatalf("23:59:59 must be inside the range")
	}
	if !nextDay.After(end) {
		t.Fatalf("next day 00:00:00 must be outside the range")
	}
}

func TestDayRangeOnDSTTransitionDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Fall-back day: 25 hours long. The end bound must still be the local
	// calendar instant 23:59:59, keeping the last hour inside the range.
	start, end, err := dayRange("2026-11-01", loc)
	if err != nil {
		t.Fatalf("day range: %v", err)
	}
	if !end.Equal(time.Date(2026, 11, 1, 23, 59, 59, 0, loc)) {
		t.Fatalf("fall-back day end must be local 23:59:59, got %v", end)
	}
	lastSecond := time.Date(2026, 11, 1, 23, 59, 59, 0, loc)
	if lastSecond.Before(start) || lastSecond.After(end) {
		t.Fatalf("23:59:59 on a fall-back day must be inside the range")
	}

	// Spring-forward day: 23 hours long. The next day's first hour must
	// stay outside the range.
	_, end, err = dayRange("2026-03-08", loc)
	if err != nil {
		t.Fatalf("day range: %v", err)
	}
	if !end.Equal(time.Date(2026, 3, 8, 23, 59, 59, 0, loc)) {
		t.Fatalf("spring-forward day end must be local 23:59:59, got %v", end)
	}
	nextDayEarly := time.Date(2026, 3, 9, 0, 30, 0, 0, loc)
	if !nextDayEarly.After(end) {
		t.Fatalf("next day 00:30 must be outside the range")
	}
}

func TestDayRangeRejectsBadInput(t *testing.T) {
	for _, date := range []string{"09-03-2026", "2026/03/09", "tomorrow", "2026-13-40"} {
		if _, _, err := dayRange(date, time.UTC); err == nil {
			t.Fatalf("expected error for date %q", date)
		}
	}
}
