// ABOUTME: Integration tests for swim CLI.
// ABOUTME: Builds the binary and runs a full roster workflow on each backend.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildSwim(t *testing.T) string {
	t.Helper()
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "swim")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/swim")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	return binary
}

func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binary := buildSwim(t)

	for _, backend := range []string{"xml", "json", "yaml", "sqlite", "badger"} {
		t.Run(backend, func(t *testing.T) {
			tmpDir := t.TempDir()

			run := func(args ...string) (string, error) {
				fullArgs := append([]string{"--backend", backend, "--data-dir", filepath.Join(tmpDir, "data")}, args...)
				cmd := exec.Command(binary, fullArgs...)
				cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"))
				output, err := cmd.CombinedOutput()
				return string(output), err
			}
			mustRun := func(args ...string) string {
				t.Helper()
				output, err := run(args...)
				if err != nil {
					t.Fatalf("swim %s failed: %v\n%s", strings.Join(args, " "), err, output)
				}
				return output
			}

			output := mustRun("add", "Michael", "3", "Freestyle")
			if !strings.Contains(output, "Added Michael") {
				t.Errorf("Expected 'Added Michael' in output, got: %s", output)
			}
			mustRun("add", "Sarah", "2", "Backstroke")
			mustRun("race", "add", "0", "Gold", "00:00:52", "Freestyle")

			if output, err := run("archive", "0"); err == nil {
				t.Errorf("archive with an ungraded race should fail, got: %s", output)
			}

			mustRun("race", "mark", "0", "0", "--graded")
			mustRun("archive", "0")

			output = mustRun("list", "--archived")
			if !strings.Contains(output, "0: Michael (Level 3, Freestyle) [Archived]") {
				t.Errorf("Expected Michael archived, got: %s", output)
			}
			output = mustRun("list", "--active")
			if !strings.Contains(output, "1: Sarah (Level 2, Backstroke) [Active]") {
				t.Errorf("Expected Sarah active, got: %s", output)
			}

			mustRun("delete", "1")
			mustRun("add", "Tom", "4", "Medley")
			output = mustRun("list")
			if !strings.Contains(output, "2: Tom") {
				t.Errorf("Expected deleted id not to be reused, got: %s", output)
			}
		})
	}
}

func TestMenuExitsOnEndOfInput(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	binary := buildSwim(t)
	tmpDir := t.TempDir()

	cmd := exec.Command(binary, "--data-dir", tmpDir, "menu")
	cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"))
	cmd.Stdin = strings.NewReader("2\n")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("menu should exit cleanly: %v\n%s", err, output)
	}
	if !strings.Contains(string(output), "No swimmer stored") {
		t.Errorf("Expected empty roster message, got: %s", output)
	}
}
