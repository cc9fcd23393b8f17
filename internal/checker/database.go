package checker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
)

// DatabaseChecker detects a database service exposed to the network. Any
// successful connect on the database port is insecure; refused or timed out
// means the service is not reachable and the check passes.
type DatabaseChecker struct {
	Port   int
	Probe  ProbeConfig
	Logger *zap.SugaredLogger
}

func (d *DatabaseChecker) port() int {
	if d.Port > 0 {
		return d.Port
	}
	return consts.PortMySQL
}

// Check probes the database port on the target address.
func (d *DatabaseChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		Port:      d.port(),
		CheckedAt: time.Now().UTC(),
	}

	conn, err := ProbeConnect(ctx, target, d.port(), d.Probe)
	if err != nil {
		if notExposed(err) {
			result.Status = StatusSecure
			result.Notes = "database service not exposed"
			return result
		}
		if d.Logger != nil {
			d.Logger.Warnw("database probe failed", "target", target, "error", err)
		}
		result.Status = StatusIndeterminate
		result.Error = err.Error()
		return result
	}
	defer conn.Close()

	result.Status = StatusInsecure
	result.Notes = fmt.Sprintf("database service reachable on port %d", d.port())

	// Banner is informational only; the connect alone decides the outcome.
	if banner, err := ReadBanner(conn, d.Probe); err == nil && banner != "" {
		result.Banner = banner
	}

	return result
}

// Name returns the checker name
func (d *DatabaseChecker) Name() string {
	return "check database"
}
