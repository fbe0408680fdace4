package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func sqliteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VISAPATH_DATABASE_DRIVER", "sqlite")
	t.Setenv("VISAPATH_DATABASE_DSN", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("VISAPATH_LOG_MODE", "test")
	t.Setenv("VISAPATH_METRICS_ENABLED", "false")
}

func TestMigrateCommand(t *testing.T) {
	sqliteEnv(t)
	out, err := runCLI(t, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "migrated sqlite database") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUserCommandsRejectBadIDs(t *testing.T) {
	sqliteEnv(t)
	for _, name := range []string{"assess", "suggest", "prune", "token"} {
		if _, err := runCLI(t, name, "not-a-uuid"); err == nil {
			t.Fatalf("%s: expected invalid id error", name)
		}
		if _, err := runCLI(t, name); err == nil {
			t.Fatalf("%s: expected arg count error", name)
		}
	}
}

func TestAssessUnknownUserFails(t *testing.T) {
	sqliteEnv(t)
	if _, err := runCLI(t, "assess", uuid.NewString()); err == nil {
		t.Fatalf("expected not found error")
	}
}

func TestPruneCommandOnEmptyUser(t *testing.T) {
	sqliteEnv(t)
	out, err := runCLI(t, "prune", uuid.NewString())
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if !strings.Contains(out, "pruned 0 suggestion(s)") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, map[string]int{"total": 3}); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil || got["total"] != 3 {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Fatalf("expected indented output")
	}
}
