package checker

import (
	"context"
	"net"

	"go.uber.org/zap"
)

// Resolver resolves scan targets to IPv4 addresses.
type Resolver struct {
	Logger *zap.SugaredLogger
}

// Resolve performs IPv4 (A-record) resolution for a hostname. Name-not-found
// and resolved-but-no-records conditions are logged and yield an empty
// slice, never an error: an empty result means "no addresses to scan".
func (r *Resolver) Resolve(ctx context.Context, host string) []string {
	resolver := &net.Resolver{
		PreferGo: true,
	}

	ips, err := resolver.LookupIP(ctx, "ip4", host)
	if err != nil {
		r.logger().Infow("dns resolution failed", "host", host, "error", err)
		return []string{}
	}
	if len(ips) == 0 {
		r.logger().Infow("no A records", "host", host)
		return []string{}
	}

	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		addrs = append(addrs, ip.String())
	}
	return addrs
}

func (r *Resolver) logger() *zap.SugaredLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop().Sugar()
}
