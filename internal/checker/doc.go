// Package checker implements the hostsentry scanning core.
//
// Architecture overview:
//
//   - Checkers implement the Checker interface (Check + Name) for one service
//     probe each: database exposure, self-signed certificate, mail STARTTLS,
//     SSH exposure, HTTP header/cookie inspection, and optional headless
//     console capture.
//   - The bounded socket prober (ProbeConnect/ReadBanner/ProbeBanner) is the
//     single primitive every banner-reading check reuses; it enforces the
//     connect and read timeouts and closes the socket on every exit path.
//   - InferIdentity turns a raw banner into a SystemIdentity via ordered,
//     first-match-wins pattern tables; the identity feeds the vulnapi client.
//   - HostScanner composes resolver, checks, and lookup into one host scan
//     with a fixed, deterministic check order per address.
//   - Runner fans a HostScanner out over many hosts with a worker pool and
//     global rate limiting, preserving per-host ordering.
//
// Every check contains its own failures: probe errors become a secure,
// insecure, or indeterminate outcome per check semantics, and nothing thrown
// inside one check ever aborts the surrounding scan.
package checker
