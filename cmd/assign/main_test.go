package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunSample(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	want := []string{
		"Course 420-1D6-VI is assigned to room C205.",
		"Course 420-1D6-VI is assigned to room C205.",
		"Course 201-1A3-VI is assigned to room C209.",
		"Course 420-1B4-VI is assigned to room C205.",
		"Course 420-1B4-VI is assigned to room C205.",
	}
	got := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines want %d:\n%s", len(got), len(want), stdout.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q want %q", i, got[i], want[i])
		}
	}
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestRunStrict(t *testing.T) {
	path := writeCatalog(t, `{
		"rooms": ["R1"],
		"sessions": [
			{"course": "first", "weekday": 1, "start": 8, "end": 10},
			{"course": "second", "weekday": 1, "start": 9, "end": 11}
		]
	}`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-data", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("non-strict exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "no room available for period day 1, 9-11") {
		t.Fatalf("missing failure line:\n%s", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"-strict", "-data", path}, &stdout, &stderr); code != 2 {
		t.Fatalf("strict exit code = %d want 2", code)
	}
}

func TestRunInvalidCatalog(t *testing.T) {
	path := writeCatalog(t, `{"rooms": ["R1", "R1"], "sessions": []}`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-data", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d want 1", code)
	}
	if !strings.Contains(stderr.String(), "duplicate room code") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestRunDumpSample(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-dump-sample"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), `"C211"`) {
		t.Fatalf("sample output missing rooms:\n%s", stdout.String())
	}
}

func TestRunVerboseLogsToStderr(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-v"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "assignment complete") {
		t.Fatalf("expected summary log on stderr, got %q", stderr.String())
	}
}
