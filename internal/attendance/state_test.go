package attendance

import (
	"testing"
	"time"
)

func recordWithStatus(status Status) *Record {
	return &Record{ID: "r1", UserID: "u1", Timestamp: time.Now(), Status: status}
}

func TestIsCheckedInNoHistory(t *testing.T) {
	if IsCheckedIn(nil) {
		t.Fatalf("user with no records must not read as checked in")
	}
}

func TestIsCheckedInFromLastRecord(t *testing.T) {
	if !IsCheckedIn(recordWithStatus(StatusCheckIn)) {
		t.Fatalf("last record check_in must read as checked in")
	}
	if IsCheckedIn(recordWithStatus(StatusCheckOut)) {
		t.Fatalf("last record check_out must read as checked out")
	}
}

func TestWorkUpdateReadsAsCheckedOut(t *testing.T) {
	// A work_update on top of an open check_in still counts as the most
	// recent record, so the user reads as checked out.
	if IsCheckedIn(recordWithStatus(StatusWorkUpdate)) {
		t.Fatalf("last record work_update must read as checked out")
	}
}

func TestNextStatusToggles(t *testing.T) {
	if got := NextStatus(false); got != StatusCheckIn {
		t.Fatalf("expected check_in for a checked-out user, got %s", got)
	}
	if got := NextStatus(true); got != StatusCheckOut {
		t.Fatalf("expected check_out for a checked-in user, got %s", got)
	}
}

func TestToggleAlternates(t *testing.T) {
	var last *Record
	want := []Status{StatusCheckIn, StatusCheckOut, StatusCheckIn, StatusCheckOut}
	for i, expected := range want {
		status := NextStatus(IsCheckedIn(last))
		if status != expected {
			t.Fatalf("submission %d: expected %s, got %s", i, expected, status)
		}
		last = recordWithStatus(status)
	}
}
