package attendance

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrEmailTaken reports a registration attempt with an email that already
// has a profile.
var ErrEmailTaken = errors.New("email already registered")

// Repository persists profiles and attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
// Safe to run on every startup.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			full_name     TEXT,
			role          TEXT NOT NULL DEFAULT 'employee',
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS attendance_records (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL REFERENCES profiles(id),
			occurred_at    TIMESTAMPTZ NOT NULL,
			status         TEXT NOT NULL,
			screenshot_url TEXT,
			description    TEXT,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_records_user_time
			ON attendance_records (user_id, occurred_at DESC)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			token      TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES profiles(id),
			expires_at TIMESTAMPTZ NOT NULL,
			revoked    BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreateProfile registers a new user with role employee.
func (r *Repository) CreateProfile(ctx context.Context, email string, fullName *string, passwordHash string) (Profile, error) {
	p := Profile{
		ID:       uuid.NewString(),
		Email:    email,
		FullName: fullName,
		Role:     RoleEmployee,
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (id, email, full_name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, p.ID, p.Email, p.FullName, p.Role, passwordHash)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return Profile{}, ErrEmailTaken
		}
		return Profile{}, err
	}
	return p, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// GetProfile returns a profile by id, or nil when absent.
func (r *Repository) GetProfile(ctx context.Context, id string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, role, created_at, updated_at
		FROM profiles WHERE id = $1
	`, id)
	var p Profile
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetProfileByEmail returns a profile and its password hash, or nil when the
// email is unknown.
func (r *Repository) GetProfileByEmail(ctx context.Context, email string) (*Profile, string, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, role, password_hash, created_at, updated_at
		FROM profiles WHERE email = $1
	`, email)
	var p Profile
	var hash string
	if err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &hash, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &p, hash, nil
}

// ListProfiles returns all profiles ordered by display name.
func (r *Repository) ListProfiles(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, full_name, role, created_at, updated_at
		FROM profiles
		ORDER BY full_name NULLS LAST, email
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var profiles []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// CountProfiles returns the number of registered users.
func (r *Repository) CountProfiles(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n)
	return n, err
}

// SaveRefreshToken stores a refresh token for revocation checks.
func (r *Repository) SaveRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, expiresAt)
	return err
}

// RevokeRefreshToken marks a token revoked. Revoking an unknown token is a
// no-op.
func (r *Repository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	return err
}

// RefreshTokenActive reports whether a stored token is usable: known, not
// revoked, not expired.
func (r *Repository) RefreshTokenActive(ctx context.Context, token string) (bool, error) {
	var active bool
	err := r.db.QueryRowContext(ctx, `
		SELECT NOT revoked AND expires_at > NOW()
		FROM refresh_tokens WHERE token = $1
	`, token).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return active, err
}

// LastRecord returns a user's most recent record of any status, or nil when
// the user has none.
func (r *Repository) LastRecord(ctx context.Context, userID string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, occurred_at, status, screenshot_url, description, created_at
		FROM attendance_records
		WHERE user_id = $1
		ORDER BY occurred_at DESC
		LIMIT 1
	`, userID)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Timestamp, &rec.Status, &rec.ScreenshotURL, &rec.Description, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// InsertRecord writes a new record. Records are never updated or deleted.
func (r *Repository) InsertRecord(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (id, user_id, occurred_at, status, screenshot_url, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.Timestamp, rec.Status, rec.ScreenshotURL, rec.Description)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// ListUserRecords returns one user's records newest-first.
func (r *Repository) ListUserRecords(ctx context.Context, userID string) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, occurred_at, status, screenshot_url, description, created_at
		FROM attendance_records
		WHERE user_id = $1
		ORDER BY occurred_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Timestamp, &rec.Status, &rec.ScreenshotURL, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListRecords returns all users' records newest-first, joined with the
// owner's profile, optionally narrowed by employee and calendar day. The
// date bounds are inclusive on both ends.
func (r *Repository) ListRecords(ctx context.Context, filter RecordFilter) ([]DisplayRecord, error) {
	query := `
		SELECT r.id, r.user_id, r.occurred_at, r.status, r.screenshot_url, r.description, r.created_at,
		       p.full_name, p.email
		FROM attendance_records r
		JOIN profiles p ON p.id = r.user_id`
	args := []any{}
	clauses := []string{}
	if filter.EmployeeID != "" {
		clauses = append(clauses, "r.user_id = $"+strconv.Itoa(len(args)+1))
		args = append(args, filter.EmployeeID)
	}
	if filter.Date != "" {
		start, end, err := dayRange(filter.Date, time.Local)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, "r.occurred_at >= $"+strconv.Itoa(len(args)+1))
		args = append(args, start)
		clauses = append(clauses, "r.occurred_at <= $"+strconv.Itoa(len(args)+1))
		args = append(args, end)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY r.occurred_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []DisplayRecord
	for rows.Next() {
		var rec DisplayRecord
		var fullName *string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Timestamp, &rec.Status, &rec.ScreenshotURL, &rec.Description, &rec.CreatedAt, &fullName, &rec.OwnerEmail); err != nil {
			return nil, err
		}
		rec.OwnerName = rec.OwnerEmail
		if fullName != nil && *fullName != "" {
			rec.OwnerName = *fullName
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
