package attendance

import "time"

// Status is the kind of an attendance record.
type Status string

const (
	StatusCheckIn    Status = "check_in"
	StatusCheckOut   Status = "check_out"
	StatusWorkUpdate Status = "work_update"
)

// Record is one event in a user's timeline. Records are insert-only: the
// application never updates or deletes them.
type Record struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
	Status        Status    `json:"status"`
	ScreenshotURL *string   `json:"screenshot_url,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasScreenshot reports whether the record carries a screenshot reference.
func (r Record) HasScreenshot() bool {
	return r.ScreenshotURL != nil && *r.ScreenshotURL != ""
}

// DisplayRecord is a record joined with its owner's display identity for the
// admin listing. OwnerName is resolved at the query boundary: full name when
// set, otherwise email.
type DisplayRecord struct {
	Record
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// Profile identifies a registered user.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

// DisplayName returns the profile's full name, falling back to email.
func (p Profile) DisplayName() string {
	if p.FullName != nil && *p.FullName != "" {
		return *p.FullName
	}
	return p.Email
}
