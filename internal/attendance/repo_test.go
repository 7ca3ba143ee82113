package attendance

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "profiles_email_key"}
	if !isUniqueViolation(unique) {
		t.Fatalf("expected SQLSTATE 23505 to be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert profile: %w", unique)) {
		t.Fatalf("expected a wrapped 23505 to be a unique violation")
	}

	if isUniqueViolation(&pgconn.PgError{Code: "57P01"}) {
		t.Fatalf("a dropped connection is not a unique violation")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("a plain error is not a unique violation")
	}
	if isUniqueViolation(nil) {
		t.Fatalf("nil is not a unique violation")
	}
}
