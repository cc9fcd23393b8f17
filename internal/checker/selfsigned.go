package checker

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	consts "github.com/hostsentry/hostsentry/internal/shared/constants"
)

// SelfSignedChecker performs a TLS handshake and compares the presented
// certificate's issuer and subject common names. Verification is disabled at
// the transport layer on purpose: the probe must be able to inspect a
// self-signed certificate rather than have the handshake reject it.
type SelfSignedChecker struct {
	Port   int
	Probe  ProbeConfig
	Logger *zap.SugaredLogger
}

func (s *SelfSignedChecker) port() int {
	if s.Port > 0 {
		return s.Port
	}
	return consts.PortHTTPS
}

// Check handshakes with the TLS service and inspects the leaf certificate.
// A failed handshake is reported insecure, not indeterminate: a TLS port
// that cannot complete a handshake is a misconfiguration in its own right.
func (s *SelfSignedChecker) Check(ctx context.Context, target string) CheckResult {
	result := CheckResult{
		Target:    target,
		Port:      s.port(),
		CheckedAt: time.Now().UTC(),
	}

	cfg := s.Probe.withDefaults()
	tlsDialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: cfg.ConnectTimeout},
		Config: &tls.Config{
			InsecureSkipVerify: true, // inspect, don't reject
		},
	}
	addr := net.JoinHostPort(target, strconv.Itoa(s.port()))

	netConn, err := tlsDialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warnw("tls handshake failed", "target", target, "error", err)
		}
		result.Status = StatusInsecure
		result.Notes = "tls handshake failed"
		result.Error = err.Error()
		return result
	}
	conn := netConn.(*tls.Conn) // tls.Dialer always returns *tls.Conn
	defer conn.Close()

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		result.Status = StatusIndeterminate
		result.Error = "no peer certificates presented"
		return result
	}

	leaf := certs[0]
	if leaf.Issuer.CommonName == leaf.Subject.CommonName {
		result.Status = StatusInsecure
		result.Notes = fmt.Sprintf("self-signed certificate (CN %q)", leaf.Subject.CommonName)
		return result
	}

	result.Status = StatusSecure
	result.Notes = fmt.Sprintf("certificate issued by %q", leaf.Issuer.CommonName)
	return result
}

// Name returns the checker name
func (s *SelfSignedChecker) Name() string {
	return "check certificate"
}
