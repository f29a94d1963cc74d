package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/ryanelliottsmith/remprobe/pkg/probe"
	"github.com/ryanelliottsmith/remprobe/pkg/report"
	"github.com/ryanelliottsmith/remprobe/pkg/session"
	"github.com/ryanelliottsmith/remprobe/pkg/types"
)

// Orchestrator walks a target list one host at a time: open a
// channel, probe, report, close, then move on. A target whose channel
// cannot be opened is warned about and skipped; any later failure
// ends the run.
type Orchestrator struct {
	Dialer   session.Dialer
	Prober   probe.Prober
	Reporter *report.Reporter

	// Warnings is the console destination for skip notices. It is
	// separate from the selected report mode.
	Warnings io.Writer
}

func New(dialer session.Dialer, prober probe.Prober, reporter *report.Reporter) *Orchestrator {
	return &Orchestrator{
		Dialer:   dialer,
		Prober:   prober,
		Reporter: reporter,
		Warnings: os.Stderr,
	}
}

// GenerateRunID returns a unique identifier for one orchestrated run.
func GenerateRunID() string {
	return uuid.New().String()
}

// Run processes targets in the order supplied. The run index starts
// at 1 and advances for every target attempted, failed sessions
// included, so output file numbering always reflects list position.
func (o *Orchestrator) Run(ctx context.Context, targets []string) (types.RunSummary, error) {
	var summary types.RunSummary

	for i, target := range targets {
		index := i + 1
		summary.Attempted++

		if err := o.runOne(ctx, target, index); err != nil {
			var skip *skipTarget
			if errors.As(err, &skip) {
				fmt.Fprintf(o.Warnings, "Warning: could not connect to %s: %v\n", target, skip.cause)
				summary.Skipped++
				continue
			}
			return summary, fmt.Errorf("target %s: %w", target, err)
		}
		summary.Probed++
	}

	return summary, nil
}

func (o *Orchestrator) runOne(ctx context.Context, target string, index int) error {
	sess, err := o.Dialer.Dial(ctx, target)
	if err != nil {
		return &skipTarget{cause: err}
	}
	defer sess.Close()

	result, err := o.Prober.Probe(ctx, sess, target)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}

	if err := o.Reporter.Report(result, index); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// skipTarget marks the one recoverable failure kind: the remote
// channel could not be established.
type skipTarget struct {
	cause error
}

func (e *skipTarget) Error() string { return e.cause.Error() }
func (e *skipTarget) Unwrap() error { return e.cause }
