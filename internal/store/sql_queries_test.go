package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/auth-gateway/models"
)

func TestBuildFindAccountByIdentifier(t *testing.T) {
	query, args, err := buildFindAccountByIdentifier("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "FROM accounts") {
		t.Errorf("expected query to select from accounts, got %q", query)
	}
	if !strings.Contains(query, "$1") {
		t.Errorf("expected dollar placeholder, got %q", query)
	}
	if len(args) != 1 || args[0] != "alice" {
		t.Errorf("expected args [alice], got %v", args)
	}
}

func TestBuildCreateAccount(t *testing.T) {
	query, args, err := buildCreateAccount("alice", "Alice", "digest", models.AccountStatusActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "INSERT INTO accounts") {
		t.Errorf("expected insert into accounts, got %q", query)
	}
	if !strings.Contains(query, "RETURNING account_id") {
		t.Errorf("expected RETURNING clause, got %q", query)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %v", args)
	}
}
