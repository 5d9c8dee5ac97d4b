// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs the root command against a temp data dir with captured output.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags clears command flag globals, which outlive a single Execute.
func resetFlags() {
	flagBackend, flagDataDir, flagFile, flagLogLevel = "", "", "", ""
	listActive, listArchived, listShort = false, false, false
	deleteArchivedOnly = false
	raceAddGraded = false
	raceUpdateGraded, raceUpdateUngraded = false, false
	raceMarkGraded, raceMarkUngraded = false, false
	statsProm = false
	exportOutput, importFormat = "", ""
	migrateTo, migrateForce, migrateSave = "", false, false
	syncRepairForce = false
	skillSkipConfirm = false
}

func isolateCLI(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "share"))
	for _, name := range []string{"SWIM_CONFIG", "SWIM_BACKEND", "SWIM_DATA_DIR", "SWIM_FILE", "SWIM_LOG_LEVEL"} {
		if old, ok := os.LookupEnv(name); ok {
			_ = os.Unsetenv(name)
			t.Cleanup(func() { _ = os.Setenv(name, old) })
		}
	}
	return filepath.Join(tmp, "data")
}

func runSwim(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--data-dir", dataDir}, args...))

	err := rootCmd.Execute()
	_ = closeStore()
	return out.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := runSwim(t, dataDir, "", args...)
	if err != nil {
		t.Fatalf("swim %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a long string", 10, "this is..."},
		{"", 5, ""},
	}

	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 6, "abc   "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("7", "swimmer"); err != nil || id != 7 {
		t.Errorf("parseID(7) = %d, %v", id, err)
	}
	for _, bad := range []string{"-1", "x", ""} {
		if _, err := parseID(bad, "swimmer"); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
}

func TestValidateCategory(t *testing.T) {
	got, err := validateCategory("BUTTERFLY")
	if err != nil || got != "Butterfly" {
		t.Errorf("validateCategory(BUTTERFLY) = %q, %v", got, err)
	}
	if _, err := validateCategory("Doggy paddle"); err == nil {
		t.Error("unknown category should fail")
	}
}

func TestAddAndList(t *testing.T) {
	dataDir := isolateCLI(t)

	out := mustRun(t, dataDir, "add", "Michael", "3", "freestyle")
	if !strings.Contains(out, "Added Michael") {
		t.Errorf("add output = %q", out)
	}

	out = mustRun(t, dataDir, "list")
	if !strings.Contains(out, "0: Michael (Level 3, Freestyle) [Active]") {
		t.Errorf("list output = %q", out)
	}
	if !strings.Contains(out, "NO RACES ADDED") {
		t.Errorf("list should show the empty race marker: %q", out)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "swimmers.xml")); err != nil {
		t.Errorf("xml roster not written: %v", err)
	}
}

func TestListEmptyRoster(t *testing.T) {
	dataDir := isolateCLI(t)

	out := mustRun(t, dataDir, "list")
	if !strings.Contains(out, "No swimmer stored") {
		t.Errorf("list output = %q", out)
	}
	out = mustRun(t, dataDir, "list", "--archived")
	if !strings.Contains(out, "No archived swimmers stored") {
		t.Errorf("list --archived output = %q", out)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	dataDir := isolateCLI(t)

	if _, err := runSwim(t, dataDir, "", "add", "Michael", "3", "Doggy"); err == nil {
		t.Error("unknown category should fail")
	}
	if _, err := runSwim(t, dataDir, "", "add", "Michael", "three", "Freestyle"); err == nil {
		t.Error("non-numeric level should fail")
	}
}

func TestDeleteNeverReusesIDs(t *testing.T) {
	dataDir := isolateCLI(t)

	mustRun(t, dataDir, "add", "A", "1", "Freestyle")
	mustRun(t, dataDir, "add", "B", "1", "Freestyle")
	mustRun(t, dataDir, "delete", "1")
	mustRun(t, dataDir, "add", "C", "1", "Freestyle")

	out := mustRun(t, dataDir, "list", "--short")
	if !strings.Contains(out, "#2") || strings.Contains(out, " B ") {
		t.Errorf("list --short output = %q", out)
	}

	if _, err := runSwim(t, dataDir, "", "delete", "1"); err == nil {
		t.Error("deleting a missing swimmer should fail")
	}
}

func TestRaceArchiveLifecycle(t *testing.T) {
	dataDir := isolateCLI(t)

	mustRun(t, dataDir, "add", "Michael", "3", "Freestyle")
	mustRun(t, dataDir, "race", "add", "0", "Gold", "00:00:52", "Freestyle")

	if _, err := runSwim(t, dataDir, "", "archive", "0"); err == nil {
		t.Fatal("archive with an ungraded race should fail")
	}

	out := mustRun(t, dataDir, "ungraded")
	if !strings.Contains(out, "Ungraded races: 1") || !strings.Contains(out, "Michael: Gold") {
		t.Errorf("ungraded output = %q", out)
	}

	mustRun(t, dataDir, "race", "mark", "0", "0", "--graded")
	mustRun(t, dataDir, "archive", "0")

	if _, err := runSwim(t, dataDir, "", "race", "add", "0", "Silver", "00:01:00", "Freestyle"); err == nil {
		t.Error("race add on an archived swimmer should fail")
	}

	out = mustRun(t, dataDir, "list", "--archived")
	if !strings.Contains(out, "Michael") || !strings.Contains(out, "Gold (Graded)") {
		t.Errorf("list --archived output = %q", out)
	}

	mustRun(t, dataDir, "activate", "0")
	out = mustRun(t, dataDir, "list", "--active")
	if !strings.Contains(out, "[Active]") {
		t.Errorf("list --active output = %q", out)
	}
}

func TestRaceUpdateAndDelete(t *testing.T) {
	dataDir := isolateCLI(t)

	mustRun(t, dataDir, "add", "Sarah", "2", "Backstroke")
	mustRun(t, dataDir, "race", "add", "0", "Bronze", "00:01:10", "Backstroke")
	mustRun(t, dataDir, "race", "update", "0", "0", "Silver", "00:01:05", "Backstroke", "--graded")

	out := mustRun(t, dataDir, "race", "list", "0")
	if !strings.Contains(out, "0: Silver (Graded) - Backstroke, Time: 00:01:05") {
		t.Errorf("race list output = %q", out)
	}

	mustRun(t, dataDir, "race", "delete", "0", "0")
	out = mustRun(t, dataDir, "race", "list", "0")
	if !strings.Contains(out, "NO RACES ADDED") {
		t.Errorf("race list after delete = %q", out)
	}

	if _, err := runSwim(t, dataDir, "", "race", "mark", "0", "0"); err == nil {
		t.Error("race mark without --graded or --ungraded should fail")
	}
}

func TestRaceUpdateKeepsGradedFlag(t *testing.T) {
	dataDir := isolateCLI(t)

	mustRun(t, dataDir, "add", "Sarah", "2", "Backstroke")
	mustRun(t, dataDir, "race", "add", "0", "Bronze", "00:01:10", "Backstroke", "--graded")
	mustRun(t, dataDir, "race", "add", "0", "Silver", "00:01:05", "Backstroke")

	// --graded from the previous add must not carry into this one.
	out := mustRun(t, dataDir, "race", "list", "0")
	if !strings.Contains(out, "1: Silver (Ungraded)") {
		t.Errorf("second race should be ungraded: %q", out)
	}

	mustRun(t, dataDir, "race", "update", "0", "0", "Gold", "00:01:00", "Backstroke")
	out = mustRun(t, dataDir, "race", "list", "0")
	if !strings.Contains(out, "0: Gold (Graded) - Backstroke, Time: 00:01:00") {
		t.Errorf("update without a flag should keep the race graded: %q", out)
	}

	mustRun(t, dataDir, "race", "update", "0", "0", "Gold", "00:01:00", "Backstroke", "--ungraded")
	out = mustRun(t, dataDir, "race", "list", "0")
	if !strings.Contains(out, "0: Gold (Ungraded)") {
		t.Errorf("update --ungraded should clear the flag: %q", out)
	}

	if _, err := runSwim(t, dataDir, "", "race", "update", "0", "0", "Gold", "00:01:00", "Backstroke", "--graded", "--ungraded"); err == nil {
		t.Error("race update with both --graded and --ungraded should fail")
	}
	if _, err := runSwim(t, dataDir, "", "race", "update", "0", "9", "Gold", "00:01:00", "Backstroke"); err == nil {
		t.Error("race update on a missing race should fail")
	}
}

func TestSearch(t *testing.T) {
	dataDir := isolateCLI(t)

	mustRun(t, dataDir, "add", "Michael", "3", "Freestyle")
	mustRun(t, dataDir, "add", "Sarah", "2", "Medley")
	mustRun(t, dataDir, "race", "add", "1", "Gold", "00:02:10", "Medley")

	out := mustRun(t, dataDir, "search", "swimmers", "mich")
	if !strings.Contains(out, "Michael") || strings.Contains(out, "Sarah") {
		t.Errorf("search swimmers output = %q", out)
	}

	out = mustRun(t, dataDir, "search", "races", "gold")
	if !strings.Contains(out, "1: Sarah") {
		t.Errorf("search races output = %q", out)
	}

	out = mustRun(t, dataDir, "search", "races", "Platinum")
	if !strings.Contains(out, "No races found for: Platinum") {
		t.Errorf("search races miss output = %q", out)
	}
}

func TestStatsProm(t *testing.T) {
	dataDir := isolateCLI(t)

	mustRun(t, dataDir, "add", "Michael", "3", "Freestyle")

	out := mustRun(t, dataDir, "stats")
	if !strings.Contains(out, "Swimmers:  1 (1 active, 0 archived)") {
		t.Errorf("stats output = %q", out)
	}

	out = mustRun(t, dataDir, "stats", "--prom")
	if !strings.Contains(out, `swim_swimmers{status="active"} 1`) {
		t.Errorf("stats --prom output = %q", out)
	}
}

func TestExportImport(t *testing.T) {
	dataDir := isolateCLI(t)
	backup := filepath.Join(t.TempDir(), "backup.json")

	mustRun(t, dataDir, "add", "Michael", "3", "Freestyle")
	mustRun(t, dataDir, "race", "add", "0", "Gold", "00:00:52", "Freestyle", "--graded")
	mustRun(t, dataDir, "export", "json", "-o", backup)

	otherDir := filepath.Join(t.TempDir(), "other")
	mustRun(t, otherDir, "add", "Existing", "1", "Medley")
	out := mustRun(t, otherDir, "import", backup)
	if !strings.Contains(out, "Imported 1 swimmers") {
		t.Errorf("import output = %q", out)
	}

	out = mustRun(t, otherDir, "list")
	if !strings.Contains(out, "1: Michael (Level 3, Freestyle) [Active]") {
		t.Errorf("imported swimmer should get the next id: %q", out)
	}
	if !strings.Contains(out, "Gold (Graded)") {
		t.Errorf("imported race missing: %q", out)
	}

	out = mustRun(t, dataDir, "export", "markdown")
	if !strings.Contains(out, "## Active Swimmers") {
		t.Errorf("markdown export = %q", out)
	}
}

func TestMigrate(t *testing.T) {
	dataDir := isolateCLI(t)

	mustRun(t, dataDir, "add", "Michael", "3", "Freestyle")
	out := mustRun(t, dataDir, "migrate", "--to", "json")
	if !strings.Contains(out, "Migrated 1 swimmers and 0 races from xml to json") {
		t.Errorf("migrate output = %q", out)
	}

	out = mustRun(t, dataDir, "--backend", "json", "list")
	if !strings.Contains(out, "Michael") {
		t.Errorf("json backend list = %q", out)
	}

	if _, err := runSwim(t, dataDir, "", "migrate", "--to", "json"); err == nil {
		t.Error("migrating onto existing data without --force should fail")
	}
	mustRun(t, dataDir, "migrate", "--to", "json", "--force")

	if _, err := runSwim(t, dataDir, "", "migrate", "--to", "xml"); err == nil {
		t.Error("migrating to the current backend should fail")
	}
}

func TestSyncNeedsCharmBackend(t *testing.T) {
	dataDir := isolateCLI(t)

	_, err := runSwim(t, dataDir, "", "sync", "now")
	if err == nil || !strings.Contains(err.Error(), "charm backend") {
		t.Errorf("sync now error = %v", err)
	}
}

func TestMenuAddAndSave(t *testing.T) {
	dataDir := isolateCLI(t)

	input := strings.Join([]string{
		"abc",       // not a number, re-prompted
		"99",        // unknown option
		"1",         // add a swimmer
		"Michael",   // name
		"x",         // bad level, re-prompted
		"3",         // level
		"doggy",     // bad category, re-prompted
		"butterfly", // category
		"17",        // save
		"0",         // exit
	}, "\n") + "\n"

	out, err := runSwim(t, dataDir, input, "menu")
	if err != nil {
		t.Fatalf("menu failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"SWIMMING APP",
		"Invalid number entered: abc",
		"Invalid option entered: 99",
		"Invalid category",
		"Added Successfully (ID 0)",
		"Saved 1 swimmers",
		"Exiting Application",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q", want)
		}
	}

	out = mustRun(t, dataDir, "list")
	if !strings.Contains(out, "0: Michael (Level 3, Butterfly)") {
		t.Errorf("saved roster = %q", out)
	}
}

func TestMenuUnsavedChangesAreDropped(t *testing.T) {
	dataDir := isolateCLI(t)

	out, err := runSwim(t, dataDir, "1\nMichael\n3\nFreestyle\n", "menu")
	if err != nil {
		t.Fatalf("menu at end of input should exit cleanly: %v", err)
	}
	if !strings.Contains(out, "Exiting Application") {
		t.Errorf("menu output = %q", out)
	}

	out = mustRun(t, dataDir, "list")
	if !strings.Contains(out, "No swimmer stored") {
		t.Errorf("unsaved swimmer was stored: %q", out)
	}
}

func TestMenuRaceFlow(t *testing.T) {
	dataDir := isolateCLI(t)
	mustRun(t, dataDir, "add", "Michael", "3", "Freestyle")

	input := strings.Join([]string{
		"6", "0", "Gold", "00:00:52", "Freestyle",
		"13",
		"9", "0", "0", "y",
		"5", "0",
		"6",
		"17",
		"0",
	}, "\n") + "\n"

	out, err := runSwim(t, dataDir, input, "menu")
	if err != nil {
		t.Fatalf("menu failed: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Race added successfully!",
		"Ungraded races: 1",
		"Race 0 is now Graded",
		"Swimmer 0 archived",
		"No active swimmers stored",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q", want)
		}
	}

	out = mustRun(t, dataDir, "list", "--archived")
	if !strings.Contains(out, "Gold (Graded)") {
		t.Errorf("archived list = %q", out)
	}
}
