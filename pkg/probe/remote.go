package probe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ryanelliottsmith/remprobe/pkg/session"
	"github.com/ryanelliottsmith/remprobe/pkg/types"
)

// Endpoint is the fixed well-known host every probe tests against.
const Endpoint = "one.one.one.one"

// pingDeadlineSeconds caps the remote ping so a blackholed endpoint
// doesn't stall the whole run.
const pingDeadlineSeconds = 5

// Prober produces one ProbeResult per target.
type Prober interface {
	Probe(ctx context.Context, sess session.Session, target string) (types.ProbeResult, error)
}

// Remote tests connectivity from a target's vantage point by running
// the target's own network tooling over an established channel.
type Remote struct{}

func NewRemote() *Remote {
	return &Remote{}
}

// Probe runs a ping and a name lookup for the fixed endpoint on the
// remote host. ComputerName is the target identifier as supplied by
// the caller, never the hostname the remote reports for itself.
func (p *Remote) Probe(ctx context.Context, sess session.Session, target string) (types.ProbeResult, error) {
	pingCmd := fmt.Sprintf("ping -c 1 -w %d %s", pingDeadlineSeconds, Endpoint)
	pingRes, err := sess.Run(ctx, pingCmd)
	if err != nil {
		return types.ProbeResult{}, fmt.Errorf("remote ping: %w", err)
	}

	lookupRes, err := sess.Run(ctx, "getent ahosts "+Endpoint)
	if err != nil {
		return types.ProbeResult{}, fmt.Errorf("remote name lookup: %w", err)
	}

	addrs := parseAhosts(lookupRes.Stdout)

	return types.ProbeResult{
		ComputerName:      target,
		PingSuccess:       pingRes.ExitCode == 0,
		NameResolve:       lookupRes.ExitCode == 0 && len(addrs) > 0,
		ResolvedAddresses: addrs,
		Timestamp:         time.Now(),
	}, nil
}

// parseAhosts extracts the unique addresses from `getent ahosts`
// output, preserving first-seen order. Each line is
// "ADDRESS  SOCKTYPE  [CANONICAL]".
func parseAhosts(out string) []string {
	var addrs []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		addr := fields[0]
		if seen[addr] {
			continue
		}
		seen[addr] = true
		addrs = append(addrs, addr)
	}
	return addrs
}
