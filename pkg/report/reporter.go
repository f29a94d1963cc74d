package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ryanelliottsmith/remprobe/pkg/types"
)

const (
	csvPrefix   = "JobResults"
	textPrefix  = "RemTestNet"
	stagingName = "TestResults.txt"
)

// OpenFunc launches a file in the platform's default viewer. It is a
// field on Reporter so tests can swap it out.
type OpenFunc func(path string) error

// Reporter renders ProbeResults in the mode selected for the run.
// Each target's report is independent; file modes write one file per
// target, named by the run index.
type Reporter struct {
	Dir  string
	Mode types.Mode
	Out  io.Writer
	Open OpenFunc
}

func New(dir string, mode types.Mode) *Reporter {
	return &Reporter{
		Dir:  dir,
		Mode: mode,
		Out:  os.Stdout,
		Open: LaunchViewer,
	}
}

// Report renders one result. index is the 1-based run index for this
// target and determines the output file name in file modes.
func (r *Reporter) Report(result types.ProbeResult, index int) error {
	switch r.Mode {
	case types.ModeHost:
		return r.writeHost(result)
	case types.ModeCSV:
		return r.writeCSV(result, index)
	case types.ModeText:
		return r.writeText(result, index)
	default:
		return fmt.Errorf("unknown report mode %v", r.Mode)
	}
}

func (r *Reporter) writeHost(result types.ProbeResult) error {
	_, err := io.WriteString(r.Out, fieldList(result))
	return err
}

// CSVFileName returns the output file name for index in csv mode.
func CSVFileName(index int) string {
	return csvPrefix + strconv.Itoa(index) + ".csv"
}

func (r *Reporter) writeCSV(result types.ProbeResult, index int) error {
	path := filepath.Join(r.Dir, CSVFileName(index))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	header := []string{"ComputerName", "PingSuccess", "NameResolve", "ResolvedAddresses", "Timestamp"}
	row := []string{
		result.ComputerName,
		strconv.FormatBool(result.PingSuccess),
		strconv.FormatBool(result.NameResolve),
		strings.Join(result.ResolvedAddresses, " "),
		result.Timestamp.Format(time.RFC3339),
	}
	if err := w.WriteAll([][]string{header, row}); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	return r.Open(path)
}

// TextFileName returns the output file name for index in text mode.
func TextFileName(index int) string {
	return textPrefix + strconv.Itoa(index) + ".txt"
}

func (r *Reporter) writeText(result types.ProbeResult, index int) error {
	final := filepath.Join(r.Dir, TextFileName(index))
	staging := filepath.Join(r.Dir, stagingName)

	// A leftover file from an earlier run is replaced, never
	// appended to.
	if err := os.Remove(final); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale %s: %w", final, err)
	}

	if err := os.WriteFile(staging, []byte(fieldList(result)), 0o644); err != nil {
		return fmt.Errorf("stage %s: %w", staging, err)
	}
	defer os.Remove(staging)

	staged, err := os.ReadFile(staging)
	if err != nil {
		return fmt.Errorf("read staged %s: %w", staging, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Computer Tested: %s\n", result.ComputerName)
	fmt.Fprintf(&b, "Run Date: %s\n", result.Timestamp.Format(time.RFC3339))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.Write(staged)

	if err := os.WriteFile(final, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", final, err)
	}

	return r.Open(final)
}

func fieldList(result types.ProbeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ComputerName:      %s\n", result.ComputerName)
	fmt.Fprintf(&b, "PingSuccess:       %t\n", result.PingSuccess)
	fmt.Fprintf(&b, "NameResolve:       %t\n", result.NameResolve)
	fmt.Fprintf(&b, "ResolvedAddresses: %s\n", strings.Join(result.ResolvedAddresses, ", "))
	fmt.Fprintf(&b, "Timestamp:         %s\n", result.Timestamp.Format(time.RFC3339))
	return b.String()
}
