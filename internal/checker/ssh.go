package checker

import (
	"context"
	"time"

	"go.uber.org/zap"

	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
	"github.com/hostsentry/hostsentry/internal/vulnapi"
)

// SSHChecker probes the SSH port, infers a product identity from the
// identification banner, and hands that identity to the vulnerability audit
// API. An unreachable SSH port is secure (service not exposed); a reachable
// one is reported as exposed together with any findings the lookup returns.
type SSHChecker struct {
	Port   int
	Probe  ProbeConfig
	Lookup *vulnapi.Client
	Logger *zap.SugaredLogger
}

func (s *SSHChecker) port() int {
	if s.Port > 0 {
		return s.Port
	}
	return consts.PortSSH
}

// Check probes the SSH service and, when reachable, runs banner inference
// and the vulnerability lookup. A lookup failure downgrades that lookup
// only; the check result itself still reports the exposure.
func (s *SSHChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		Port:      s.port(),
		CheckedAt: time.Now().UTC(),
	}

	banner, err := ProbeBanner(ctx, target, s.port(), s.Probe)
	if err != nil {
		if notExposed(err) {
			result.Status = StatusSecure
			result.Notes = "ssh service not exposed"
			return result
		}
		if s.Logger != nil {
			s.Logger.Warnw("ssh probe failed", "target", target, "error", err)
		}
		result.Status = StatusIndeterminate
		result.Error = err.Error()
		return result
	}

	result.Status = StatusInsecure
	result.Notes = "ssh service reachable"
	result.Banner = banner

	identity := InferIdentity(banner)
	result.Identity = &identity

	if s.Lookup == nil || len(identity.Software) == 0 {
		return result
	}

	findings, err := s.Lookup.Query(ctx, vulnapi.Query{
		Software:        identity.Software,
		OperatingSystem: identity.OperatingSystem,
		Fields:          vulnapi.DefaultFields,
	})
	if err != nil {
		// The lookup fails alone; the scan and this result carry on.
		if s.Logger != nil {
			s.Logger.Warnw("vulnerability lookup failed", "target", target, "error", err)
		}
		result.Error = err.Error()
		return result
	}

	result.Vulnerabilities = findings
	return result
}

// Name returns the checker name
func (s *SSHChecker) Name() string {
	return "check ssh"
}
