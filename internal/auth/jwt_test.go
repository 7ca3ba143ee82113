package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	pair, err := Issue("user-1", "employee", "worklog", "test-key", 15*time.Minute, 24*time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens to be set")
	}

	claims, err := Parse(pair.AccessToken, "test-key", "worklog")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %q", claims.Subject)
	}
	if claims.Role != "employee" {
		t.Fatalf("expected role employee, got %q", claims.Role)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	pair, err := Issue("user-1", "admin", "worklog", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "other-key", "worklog"); err == nil {
		t.Fatalf("expected parse to fail with the wrong key")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	pair, err := Issue("user-1", "admin", "someone-else", "test-key", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "test-key", "worklog"); err == nil {
		t.Fatalf("expected parse to fail on issuer mismatch")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	pair, err := Issue("user-1", "employee", "worklog", "test-key", -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := Parse(pair.AccessToken, "test-key", "worklog"); err == nil {
		t.Fatalf("expected parse to fail on an expired token")
	}
}
