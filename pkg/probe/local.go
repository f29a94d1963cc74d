package probe

import (
	"context"
	"net"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/ryanelliottsmith/remprobe/pkg/types"
)

// DefaultLocalTimeout bounds one local probe (ping plus lookup).
const DefaultLocalTimeout = 10 * time.Second

// Local runs the same connectivity test as Remote, but from the
// machine remprobe itself runs on. Used by the standalone check
// command; no remote channel is involved.
type Local struct {
	// Privileged selects raw ICMP sockets (requires CAP_NET_RAW).
	Privileged bool
}

func NewLocal() *Local {
	return &Local{}
}

// Probe pings and resolves the fixed endpoint. The name argument is
// recorded as ComputerName so output matches the remote path.
func (p *Local) Probe(ctx context.Context, name string) (types.ProbeResult, error) {
	pingOK := p.ping(ctx)

	addrs, resolveOK := p.resolve(ctx)

	return types.ProbeResult{
		ComputerName:      name,
		PingSuccess:       pingOK,
		NameResolve:       resolveOK,
		ResolvedAddresses: addrs,
		Timestamp:         time.Now(),
	}, nil
}

func (p *Local) ping(ctx context.Context) bool {
	pinger, err := probing.NewPinger(Endpoint)
	if err != nil {
		return false
	}

	pinger.SetPrivileged(p.Privileged)
	pinger.Count = 1
	pinger.Timeout = 5 * time.Second

	if err := pinger.RunWithContext(ctx); err != nil {
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}

func (p *Local) resolve(ctx context.Context) ([]string, bool) {
	ips, err := net.DefaultResolver.LookupIP(ctx, "ip", Endpoint)
	if err != nil {
		return nil, false
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, ip.String())
	}
	return addrs, len(addrs) > 0
}
