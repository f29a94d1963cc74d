package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ryanelliottsmith/remprobe/pkg/types"
)

func sampleResult() types.ProbeResult {
	return types.ProbeResult{
		ComputerName:      "web01",
		PingSuccess:       true,
		NameResolve:       true,
		ResolvedAddresses: []string{"1.1.1.1", "1.0.0.1"},
		Timestamp:         time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func newTestReporter(t *testing.T, mode types.Mode) (*Reporter, *strings.Builder, *[]string) {
	t.Helper()

	var console strings.Builder
	var opened []string

	r := New(t.TempDir(), mode)
	r.Out = &console
	r.Open = func(path string) error {
		opened = append(opened, path)
		return nil
	}
	return r, &console, &opened
}

func TestHostModeWritesFieldListNoFile(t *testing.T) {
	r, console, opened := newTestReporter(t, types.ModeHost)

	if err := r.Report(sampleResult(), 1); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	out := console.String()
	for _, want := range []string{
		"ComputerName:      web01",
		"PingSuccess:       true",
		"NameResolve:       true",
		"ResolvedAddresses: 1.1.1.1, 1.0.0.1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("host output missing %q, got:\n%s", want, out)
		}
	}

	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("host mode created %d files, want 0", len(entries))
	}
	if len(*opened) != 0 {
		t.Errorf("host mode opened a viewer for %v", *opened)
	}
}

func TestCSVModeWritesIndexedFile(t *testing.T) {
	r, _, opened := newTestReporter(t, types.ModeCSV)

	if err := r.Report(sampleResult(), 2); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	path := filepath.Join(r.Dir, "JobResults2.csv")
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 data row", len(rows))
	}

	wantHeader := []string{"ComputerName", "PingSuccess", "NameResolve", "ResolvedAddresses", "Timestamp"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "web01" || rows[1][1] != "true" || rows[1][3] != "1.1.1.1 1.0.0.1" {
		t.Errorf("unexpected data row: %v", rows[1])
	}

	if len(*opened) != 1 || (*opened)[0] != path {
		t.Errorf("viewer opened %v, want [%s]", *opened, path)
	}
}

func TestTextModeReplacesExistingFile(t *testing.T) {
	r, _, opened := newTestReporter(t, types.ModeText)

	stale := filepath.Join(r.Dir, "RemTestNet3.txt")
	if err := os.WriteFile(stale, []byte("stale content\n"), 0o644); err != nil {
		t.Fatalf("seed stale file: %v", err)
	}

	if err := r.Report(sampleResult(), 3); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	content, err := os.ReadFile(stale)
	if err != nil {
		t.Fatalf("read final file: %v", err)
	}
	if strings.Contains(string(content), "stale content") {
		t.Error("old file content survived; file should be replaced, not appended")
	}
	if !strings.Contains(string(content), "Computer Tested: web01") {
		t.Errorf("missing header line, got:\n%s", content)
	}
	if !strings.Contains(string(content), "ComputerName:      web01") {
		t.Errorf("missing field list, got:\n%s", content)
	}

	if len(*opened) != 1 || (*opened)[0] != stale {
		t.Errorf("viewer opened %v, want [%s]", *opened, stale)
	}
}

func TestTextModeRemovesStagingFile(t *testing.T) {
	r, _, _ := newTestReporter(t, types.ModeText)

	if err := r.Report(sampleResult(), 1); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	staging := filepath.Join(r.Dir, "TestResults.txt")
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Errorf("staging file %s still exists after report", staging)
	}

	if _, err := os.Stat(filepath.Join(r.Dir, "RemTestNet1.txt")); err != nil {
		t.Errorf("final file missing: %v", err)
	}
}

func TestFileNamesUniquePerIndex(t *testing.T) {
	seen := make(map[string]bool)
	for i := 1; i <= 5; i++ {
		for _, name := range []string{CSVFileName(i), TextFileName(i)} {
			if seen[name] {
				t.Errorf("duplicate file name %q", name)
			}
			seen[name] = true
		}
	}
}
