package db

import (
	"regexp"
	"strings"
	"testing"
)

// The schema's column defaults must stay inside the role vocabulary the
// services accept, or rows created with the default silently lose their role.
func TestSchemaDefaultRoleIsSupported(t *testing.T) {
	raw, err := migrationsFS.ReadFile("migrations/0001_init.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	matches := regexp.MustCompile(`default_role TEXT NOT NULL DEFAULT '([^']+)'`).FindStringSubmatch(string(raw))
	if len(matches) != 2 {
		t.Fatalf("users.default_role default not found in migration")
	}
	supported := map[string]bool{
		"Author": true, "Editor": true, "Approver": true, "Publisher": true, "Admin": true,
	}
	if !supported[matches[1]] {
		t.Fatalf("users.default_role defaults to unsupported role %q", matches[1])
	}
}

func TestMigrationPairsComplete(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	ups := 0
	downs := 0
	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 {
		t.Fatalf("no up migrations embedded")
	}
	if ups != downs {
		t.Fatalf("unbalanced migrations: %d up, %d down", ups, downs)
	}
}
