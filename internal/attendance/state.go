package attendance

// IsCheckedIn derives the current check-in state from a user's most recent
// record of any kind, or nil if the user has no records. Only a most-recent
// check_in reads as checked in; a work_update on top of an open check_in
// therefore reads as checked out, matching the product's behavior.
func IsCheckedIn(last *Record) bool {
	return last != nil && last.Status == StatusCheckIn
}

// NextStatus returns the status a new attendance submission should carry
// given the current check-in state.
func NextStatus(checkedIn bool) Status {
	if checkedIn {
		return StatusCheckOut
	}
	return StatusCheckIn
}
