package checker

import (
	"context"
	"testing"
	"time"
)

func TestResolver_NameNotFoundYieldsEmpty(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// RFC 6761 reserves .invalid: resolution can never succeed.
	r := &Resolver{}
	addrs := r.Resolve(ctx, "does-not-exist.invalid")
	if addrs == nil {
		t.Fatal("Resolve() returned nil, want empty slice")
	}
	if len(addrs) != 0 {
		t.Errorf("Resolve() = %v, want empty", addrs)
	}
}

func TestResolver_Localhost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r := &Resolver{}
	addrs := r.Resolve(ctx, "localhost")
	if len(addrs) == 0 {
		t.Skip("localhost did not resolve to IPv4 in this environment")
	}
	for _, addr := range addrs {
		if addr == "" {
			t.Errorf("Resolve() returned an empty address in %v", addrs)
		}
	}
}
