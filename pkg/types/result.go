package types

import "time"

// ProbeResult holds the outcome of one connectivity probe, executed
// from a single target's network vantage point. It is built once by
// the probe and read-only from then on.
type ProbeResult struct {
	ComputerName      string    `json:"computer_name"`
	PingSuccess       bool      `json:"ping_success"`
	NameResolve       bool      `json:"name_resolve"`
	ResolvedAddresses []string  `json:"resolved_addresses,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// RunSummary counts what happened across one orchestrated run.
type RunSummary struct {
	Attempted int `json:"attempted"`
	Probed    int `json:"probed"`
	Skipped   int `json:"skipped"`
}
