package checker

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
)

// MailChecker flags SMTP services that speak ESMTP without advertising
// STARTTLS in their greeting.
//
// A refused or timed-out connection counts as secure: no mail service
// present means nothing to misconfigure.
type MailChecker struct {
	Port   int
	Probe  ProbeConfig
	Logger *zap.SugaredLogger
}

func (m *MailChecker) port() int {
	if m.Port > 0 {
		return m.Port
	}
	return consts.PortSMTP
}

// Check reads the SMTP greeting banner and inspects it for ESMTP/STARTTLS.
func (m *MailChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		Port:      m.port(),
		CheckedAt: time.Now().UTC(),
	}

	banner, err := ProbeBanner(ctx, target, m.port(), m.Probe)
	if err != nil {
		if notExposed(err) {
			result.Status = StatusSecure
			result.Notes = "mail service not exposed"
			return result
		}
		if m.Logger != nil {
			m.Logger.Warnw("mail probe failed", "target", target, "error", err)
		}
		result.Status = StatusIndeterminate
		result.Error = err.Error()
		return result
	}

	result.Banner = banner

	switch {
	case !strings.Contains(banner, "ESMTP"):
		result.Status = StatusSecure
		result.Notes = "greeting does not advertise ESMTP"
	case strings.Contains(banner, "STARTTLS"):
		result.Status = StatusSecure
		result.Notes = "STARTTLS advertised"
	default:
		result.Status = StatusInsecure
		result.Notes = "ESMTP service without STARTTLS"
	}

	return result
}

// Name returns the checker name
func (m *MailChecker) Name() string {
	return "check mail"
}
