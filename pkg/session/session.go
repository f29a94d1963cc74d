package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
)

// DefaultDialTimeout bounds the TCP connect for a new channel.
const DefaultDialTimeout = 10 * time.Second

// Result holds the output of one remote command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Session is an established remote execution channel. One channel is
// opened and closed per target; it is never shared or reused.
type Session interface {
	// Run executes a command on the remote host. A non-zero exit
	// status is reported through Result.ExitCode, not err; err is
	// reserved for transport and context failures.
	Run(ctx context.Context, cmd string) (*Result, error)
	Close() error
}

// Dialer opens Sessions to targets.
type Dialer interface {
	Dial(ctx context.Context, target string) (Session, error)
}

// Config carries the settings shared by every channel in a run.
type Config struct {
	User     string
	KeyFile  string
	Password string
	Port     int
	Timeout  time.Duration
}

// SSHDialer opens SSH channels. Host keys are not verified; the run
// trusts whatever host answers on the target address.
type SSHDialer struct {
	cfg Config
}

func NewSSHDialer(cfg Config) (*SSHDialer, error) {
	if cfg.User == "" {
		u, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("resolve current user: %w", err)
		}
		cfg.User = u.Username
	}
	if cfg.KeyFile == "" && cfg.Password == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := filepath.Join(home, ".ssh", "id_rsa")
			if _, err := os.Stat(candidate); err == nil {
				cfg.KeyFile = candidate
			}
		}
	}
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultDialTimeout
	}
	return &SSHDialer{cfg: cfg}, nil
}

func (d *SSHDialer) Dial(ctx context.Context, target string) (Session, error) {
	auth, err := d.authMethods()
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User:            d.cfg.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         d.cfg.Timeout,
	}

	addr := net.JoinHostPort(target, strconv.Itoa(d.cfg.Port))

	dialer := net.Dialer{Timeout: d.cfg.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}

	return &sshSession{client: ssh.NewClient(sshConn, chans, reqs)}, nil
}

func (d *SSHDialer) authMethods() ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if d.cfg.KeyFile != "" {
		keyBytes, err := os.ReadFile(d.cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parse private key %s: %w", d.cfg.KeyFile, err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if d.cfg.Password != "" {
		methods = append(methods, ssh.Password(d.cfg.Password))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication configured (need --key or --password)")
	}
	return methods, nil
}

type sshSession struct {
	client *ssh.Client
}

func (s *sshSession) Run(ctx context.Context, cmd string) (*Result, error) {
	sess, err := s.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("open exec channel: %w", err)
	}
	defer sess.Close()

	var stdout, stderr bytes.Buffer
	sess.Stdout = &stdout
	sess.Stderr = &stderr

	// The ssh package has no context plumbing; closing the exec
	// channel unblocks Run when the context expires.
	done := make(chan error, 1)
	go func() { done <- sess.Run(cmd) }()

	select {
	case err := <-done:
		result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
		if err != nil {
			var exitErr *ssh.ExitError
			if errors.As(err, &exitErr) {
				result.ExitCode = exitErr.ExitStatus()
				return result, nil
			}
			return nil, fmt.Errorf("run %q: %w", cmd, err)
		}
		return result, nil
	case <-ctx.Done():
		sess.Close()
		<-done
		return nil, ctx.Err()
	}
}

func (s *sshSession) Close() error {
	return s.client.Close()
}
