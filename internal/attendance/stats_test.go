package attendance

import (
	"testing"
	"time"
)

func displayRecord(status Status, ts time.Time, screenshot bool) DisplayRecord {
	rec := DisplayRecord{Record: Record{ID: "r", UserID: "u", Timestamp: ts, Status: status}}
	if screenshot {
		url := "https://cdn.example.com/shot.png"
		rec.ScreenshotURL = &url
	}
	return rec
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(0, nil, time.Now())
	if stats != (DashboardStats{}) {
		t.Fatalf("empty record list must yield zero counts, got %+v", stats)
	}
}

func TestComputeStatsSingleCheckIn(t *testing.T) {
	now := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	records := []DisplayRecord{displayRecord(StatusCheckIn, now.Add(-2*time.Hour), true)}

	stats := ComputeStats(3, records, now)
	if stats.TotalEmployees != 3 {
		t.Fatalf("expected 3 employees, got %d", stats.TotalEmployees)
	}
	if stats.TodaysCheckIns != 1 || stats.TodaysScreenshots != 1 || stats.WorkUpdatesToday != 0 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}

func TestComputeStatsSkipsOtherDays(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	records := []DisplayRecord{
		displayRecord(StatusCheckIn, now.AddDate(0, 0, -1), true),
		displayRecord(StatusWorkUpdate, now.Add(24*time.Hour), true),
	}
	stats := ComputeStats(1, records, now)
	if stats.TodaysCheckIns != 0 || stats.TodaysScreenshots != 0 || stats.WorkUpdatesToday != 0 {
		t.Fatalf("records outside today must not count: %+v", stats)
	}
}

func TestComputeStatsScreenshotsNeedURL(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	records := []DisplayRecord{
		displayRecord(StatusCheckIn, now, false),
		displayRecord(StatusCheckOut, now, true),
		displayRecord(StatusWorkUpdate, now, true), // work updates never count as attendance screenshots
	}
	stats := ComputeStats(2, records, now)
	if stats.TodaysScreenshots != 1 {
		t.Fatalf("expected 1 attendance screenshot, got %d", stats.TodaysScreenshots)
	}
	if stats.TodaysCheckIns != 1 || stats.WorkUpdatesToday != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
}

func TestComputeStatsOrderInvariant(t *testing.T) {
	now := time.Date(2026, 3, 9, 17, 45, 0, 0, time.UTC)
	records := []DisplayRecord{
		displayRecord(StatusCheckIn, now.Add(-8*time.Hour), true),
		displayRecord(StatusWorkUpdate, now.Add(-4*time.Hour), true),
		displayRecord(StatusCheckOut, now.Add(-1*time.Hour), true),
		displayRecord(StatusCheckIn, now.AddDate(0, 0, -3), true),
	}
	forward := ComputeStats(5, records, now)

	reversed := make([]DisplayRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	if backward := ComputeStats(5, reversed, now); backward != forward {
		t.Fatalf("aggregation must not depend on record order: %+v vs %+v", forward, backward)
	}
}
