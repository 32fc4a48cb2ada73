// Package instance keeps a single copy of the tray app running per user.
package instance

import (
	"errors"
	"net"
	"sync"

	"github.com/iconify-tray/iconify/internal/logging"
)

var log = logging.L("instance")

// ErrAlreadyRunning is returned by Acquire when another process holds the
// lock.
var ErrAlreadyRunning = errors.New("iconify is already running")

// Lock is held for the life of the process. Later launches connect to it and
// exit; each connection is reported through the callback passed to Acquire.
type Lock struct {
	ln       net.Listener
	endpoint string
	onPing   func()

	closeOnce sync.Once
	done      chan struct{}
}

// Acquire takes the per-user lock named name. onPing, if non-nil, is called
// whenever another launch is turned away.
func Acquire(name string, onPing func()) (*Lock, error) {
	endpoint := endpointFor(name)
	if alreadyRunning(endpoint) {
		return nil, ErrAlreadyRunning
	}

	ln, err := listen(endpoint)
	if err != nil {
		return nil, err
	}

	l := &Lock{ln: ln, endpoint: endpoint, onPing: onPing, done: make(chan struct{})}
	go l.serve()
	log.Debug("instance lock acquired", "endpoint", endpoint)
	return l, nil
}

// Endpoint is the pipe or socket path backing the lock.
func (l *Lock) Endpoint() string { return l.endpoint }

func (l *Lock) serve() {
	defer close(l.done)
	for {
		conn, err := l.ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
		log.Info("second launch detected")
		if l.onPing != nil {
			l.onPing()
		}
	}
}

// Release frees the lock. Safe to call more than once.
func (l *Lock) Release() error {
	var err error
	l.closeOnce.Do(func() {
		err = l.ln.Close()
		<-l.done
		cleanup(l.endpoint)
	})
	return err
}
