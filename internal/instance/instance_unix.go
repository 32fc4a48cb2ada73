//go:build !windows

package instance

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"
)

func endpointFor(name string) string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, name+"-"+strconv.Itoa(os.Getuid())+".sock")
}

func alreadyRunning(endpoint string) bool {
	conn, err := net.DialTimeout("unix", endpoint, 500*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func listen(endpoint string) (net.Listener, error) {
	// Nobody answered, so any socket file left behind is stale.
	if err := os.Remove(endpoint); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}

	ln, err := net.Listen("unix", endpoint)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("listen %s: %w", endpoint, err)
	}
	if err := os.Chmod(endpoint, 0600); err != nil {
		ln.Close()
		return nil, fmt.Errorf("chmod socket: %w", err)
	}
	ln.(*net.UnixListener).SetUnlinkOnClose(false)
	return ln, nil
}

func cleanup(endpoint string) {
	os.Remove(endpoint)
}
