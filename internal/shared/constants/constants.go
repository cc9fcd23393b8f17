package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// DefaultConnectTimeout bounds TCP/TLS connection establishment for every probe.
	DefaultConnectTimeout = 5 * time.Second
	// DefaultReadTimeout bounds the wait for the first inbound banner chunk.
	DefaultReadTimeout = 5 * time.Second
	// DefaultHTTPTimeout bounds the HTTP inspection request.
	DefaultHTTPTimeout = 10 * time.Second
	// DefaultLookupTimeout bounds the vulnerability audit API round trip.
	DefaultLookupTimeout = 15 * time.Second
)

// Fixed probe ports. Service checks run in the order
// database, certificate, mail, ssh.
const (
	PortSSH   = 22
	PortSMTP  = 25
	PortHTTPS = 443
	PortMySQL = 3306
)

// BannerReadLimit caps how many bytes of a service banner a probe will read.
const BannerReadLimit = 1024
