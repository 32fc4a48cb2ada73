//go:build windows

package instance

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/Microsoft/go-winio"
)

// SDDL: only the owner and SYSTEM may connect.
const pipeSecurity = "D:P(A;;GA;;;SY)(A;;GA;;;OW)"

func endpointFor(name string) string {
	user := strings.ToLower(os.Getenv("USERNAME"))
	return `\\.\pipe\` + name + "-" + user
}

func alreadyRunning(endpoint string) bool {
	timeout := 500 * time.Millisecond
	conn, err := winio.DialPipe(endpoint, &timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func listen(endpoint string) (net.Listener, error) {
	ln, err := winio.ListenPipe(endpoint, &winio.PipeConfig{SecurityDescriptor: pipeSecurity})
	if err != nil {
		// Lost a race with another launch.
		if alreadyRunning(endpoint) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("listen pipe %s: %w", endpoint, err)
	}
	return ln, nil
}

func cleanup(string) {}
