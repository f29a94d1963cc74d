package types

import "fmt"

// Mode selects how probe results are rendered. It is fixed once per
// run, never per target.
type Mode int

const (
	// ModeHost prints a field list to the console. No file is written.
	ModeHost Mode = iota
	// ModeCSV writes one delimited file per target and opens it.
	ModeCSV
	// ModeText writes one plain-text log file per target and opens it.
	ModeText
)

func (m Mode) String() string {
	switch m {
	case ModeHost:
		return "host"
	case ModeCSV:
		return "csv"
	case ModeText:
		return "text"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a CLI flag value onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "host", "":
		return ModeHost, nil
	case "csv":
		return ModeCSV, nil
	case "text":
		return ModeText, nil
	default:
		return ModeHost, fmt.Errorf("unknown output mode %q (expected host, csv, or text)", s)
	}
}
