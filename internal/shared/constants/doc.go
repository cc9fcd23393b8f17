// Package constants centralizes timeouts, probe ports, and file permissions
// shared across the scanner. Probe timeouts live here once and are threaded
// through ProbeConfig rather than re-declared per check.
package constants
