package attendance

import "time"

// DashboardStats holds the admin dashboard tiles.
type DashboardStats struct {
	TotalEmployees    int `json:"total_employees"`
	TodaysCheckIns    int `json:"todays_check_ins"`
	TodaysScreenshots int `json:"todays_screenshots"`
	WorkUpdatesToday  int `json:"work_updates_today"`
}

// ComputeStats derives dashboard counts from the loaded record list and the
// caller's clock. It is pure and order-independent over records.
func ComputeStats(totalEmployees int, records []DisplayRecord, now time.Time) DashboardStats {
	stats := DashboardStats{TotalEmployees: totalEmployees}
	for _, r := range records {
		if !sameDay(r.Timestamp, now) {
			continue
		}
		switch r.Status {
		case StatusCheckIn:
			stats.TodaysCheckIns++
			if r.HasScreenshot() {
				stats.TodaysScreenshots++
			}
		case StatusCheckOut:
			if r.HasScreenshot() {
				stats.TodaysScreenshots++
			}
		case StatusWorkUpdate:
			stats.WorkUpdatesToday++
		}
	}
	return stats
}

// sameDay reports whether t falls on ref's calendar day, evaluated in ref's
// location. No further timezone normalization is applied.
func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
