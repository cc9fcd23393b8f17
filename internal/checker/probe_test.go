package checker

import (
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	sharedErrors "github.com/hostsentry/hostsentry/internal/shared/errors"
)

// startBannerServer starts a TCP listener that writes banner to every
// connection. It returns the host and port, and closes with the test.
func startBannerServer(t *testing.T, banner string) (string, int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			if banner != "" {
				_, _ = conn.Write([]byte(banner))
			}
			// Hold the connection open; the prober only needs the first chunk.
			go func(c net.Conn) {
				time.Sleep(2 * time.Second)
				c.Close()
			}(conn)
		}
	}()

	return addrParts(t, ln.Addr().String())
}

// closedPort returns a port on which nothing is listening.
func closedPort(t *testing.T) (string, int) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	host, port := addrParts(t, ln.Addr().String())
	ln.Close()
	return host, port
}

func addrParts(t *testing.T, addr string) (string, int) {
	t.Helper()

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split addr %q: %v", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port %q: %v", portStr, err)
	}
	return host, port
}

func shortProbe() ProbeConfig {
	return ProbeConfig{
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    200 * time.Millisecond,
	}
}

func TestProbeBanner_ReadsFirstChunk(t *testing.T) {
	host, port := startBannerServer(t, "SSH-2.0-OpenSSH_9.6\r\n")

	banner, err := ProbeBanner(context.Background(), host, port, shortProbe())
	if err != nil {
		t.Fatalf("ProbeBanner() error = %v", err)
	}
	if !strings.Contains(banner, "SSH-2.0-OpenSSH_9.6") {
		t.Errorf("ProbeBanner() = %q, want SSH banner", banner)
	}
}

func TestProbeBanner_ConnectionRefused(t *testing.T) {
	host, port := closedPort(t)

	_, err := ProbeBanner(context.Background(), host, port, shortProbe())
	if !errors.Is(err, sharedErrors.ErrConnectionRefused) {
		t.Errorf("ProbeBanner() error = %v, want ErrConnectionRefused", err)
	}
	if !notExposed(err) {
		t.Errorf("refused connection should count as not exposed")
	}
}

func TestProbeBanner_SilentServiceTimesOut(t *testing.T) {
	host, port := startBannerServer(t, "")

	start := time.Now()
	_, err := ProbeBanner(context.Background(), host, port, shortProbe())
	if !errors.Is(err, sharedErrors.ErrProbeTimeout) {
		t.Errorf("ProbeBanner() error = %v, want ErrProbeTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("probe took %v, read timeout not enforced", elapsed)
	}
	if !notExposed(err) {
		t.Errorf("probe timeout should count as not exposed")
	}
}

func TestProbeConnect_CallerClosesConnection(t *testing.T) {
	host, port := startBannerServer(t, "hello")

	conn, err := ProbeConnect(context.Background(), host, port, shortProbe())
	if err != nil {
		t.Fatalf("ProbeConnect() error = %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("closing probe connection: %v", err)
	}
}

func TestClassifyProbeError_ResetIsConnectionError(t *testing.T) {
	err := classifyProbeError(errors.New("read: connection reset by peer"))
	if !errors.Is(err, sharedErrors.ErrConnection) {
		t.Errorf("classifyProbeError() = %v, want ErrConnection", err)
	}
	if notExposed(err) {
		t.Errorf("generic connection error must not count as not exposed")
	}
}
