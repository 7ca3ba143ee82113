package attendance

// ValidationError reports missing or malformed input. It is raised before
// any storage or database call is made.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// UploadError wraps a failed screenshot upload. No record is created when
// the upload phase fails.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "screenshot upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }

// RecordCreateError wraps a failed record insert. The uploaded screenshot is
// left in place; there is no compensating delete.
type RecordCreateError struct {
	Err error
}

func (e *RecordCreateError) Error() string { return "record create failed: " + e.Err.Error() }
func (e *RecordCreateError) Unwrap() error { return e.Err }

// QueryError wraps a failed read. Callers keep whatever they last loaded.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return "record query failed: " + e.Err.Error() }
func (e *QueryError) Unwrap() error { return e.Err }
