package checker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"

	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
	sharedErrors "github.com/hostsentry/hostsentry/internal/shared/errors"
)

// ProbeConfig carries the probe timeouts. Defaults come from the shared
// constants package; checks receive this struct instead of declaring their
// own timeout values.
type ProbeConfig struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

func (c ProbeConfig) withDefaults() ProbeConfig {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = consts.DefaultConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = consts.DefaultReadTimeout
	}
	return c
}

// ProbeConnect establishes a TCP connection to host:port within the connect
// timeout. The caller owns the returned connection and must close it.
func ProbeConnect(ctx context.Context, host string, port int, cfg ProbeConfig) (net.Conn, error) {
	cfg = cfg.withDefaults()
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, classifyProbeError(err)
	}
	return conn, nil
}

// ReadBanner waits for the first inbound data chunk on an established
// connection. It does not wait for a complete line or further chunks.
func ReadBanner(conn net.Conn, cfg ProbeConfig) (string, error) {
	cfg = cfg.withDefaults()
	if err := conn.SetReadDeadline(time.Now().Add(cfg.ReadTimeout)); err != nil {
		return "", classifyProbeError(err)
	}
	buf := make([]byte, consts.BannerReadLimit)
	n, err := conn.Read(buf)
	if err != nil {
		return "", classifyProbeError(err)
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

// ProbeBanner connects to host:port and returns the first banner chunk the
// service sends unprompted. The connection is closed on every exit path.
func ProbeBanner(ctx context.Context, host string, port int, cfg ProbeConfig) (string, error) {
	conn, err := ProbeConnect(ctx, host, port, cfg)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	return ReadBanner(conn, cfg)
}

// classifyProbeError maps a socket-level error onto the probe failure
// taxonomy: timeout, refused, or generic connection error.
func classifyProbeError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", sharedErrors.ErrProbeTimeout, err)
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w: %v", sharedErrors.ErrConnectionRefused, err)
	}
	return fmt.Errorf("%w: %v", sharedErrors.ErrConnection, err)
}

// notExposed reports whether a probe failure means the service is simply not
// reachable (refused or timed out), as opposed to an indeterminate fault.
func notExposed(err error) bool {
	return errors.Is(err, sharedErrors.ErrProbeTimeout) || errors.Is(err, sharedErrors.ErrConnectionRefused)
}
