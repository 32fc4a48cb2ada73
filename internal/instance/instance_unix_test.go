//go:build !windows

package instance

import (
	"os"
	"testing"
)

func TestStaleSocketIsReplaced(t *testing.T) {
	name := lockName(t)
	endpoint := endpointFor(name)
	if err := os.WriteFile(endpoint, nil, 0600); err != nil {
		t.Fatalf("write stale file: %v", err)
	}
	t.Cleanup(func() { os.Remove(endpoint) })

	l, err := Acquire(name, nil)
	if err != nil {
		t.Fatalf("Acquire over stale socket: %v", err)
	}
	if l.Endpoint() != endpoint {
		t.Fatalf("Endpoint = %q, want %q", l.Endpoint(), endpoint)
	}
	l.Release()
	if _, err := os.Stat(endpoint); !os.IsNotExist(err) {
		t.Fatalf("socket left behind after Release: %v", err)
	}
}
