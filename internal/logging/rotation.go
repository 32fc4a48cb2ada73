package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	defaultMaxSizeMB  = 5
	defaultMaxBackups = 2
)

// RotatingWriter appends to a log file and shifts it to numbered backups
// once it passes a size limit. Backups keep the file extension, so
// iconify.log rotates to iconify.1.log, iconify.2.log and so on. Safe for
// concurrent use.
type RotatingWriter struct {
	path  string
	limit int64
	keep  int

	mu   sync.Mutex
	f    *os.File
	size int64
}

// NewRotatingWriter opens path for appending. Zero or negative limits take
// the defaults (5 MB, 2 backups). A file already over the limit is rotated
// before the first write, so a tray started at every login does not keep
// growing one file.
func NewRotatingWriter(path string, maxSizeMB, maxBackups int) (*RotatingWriter, error) {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSizeMB
	}
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	w := &RotatingWriter{path: path, limit: int64(maxSizeMB) << 20, keep: maxBackups}
	if err := w.open(); err != nil {
		return nil, err
	}
	if w.size >= w.limit {
		if err := w.shift(); err != nil {
			w.f.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return 0, os.ErrClosed
	}
	if w.size > 0 && w.size+int64(len(p)) > w.limit {
		if err := w.shift(); err != nil {
			return 0, fmt.Errorf("rotate log: %w", err)
		}
	}
	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

// Close closes the file. Later writes fail with os.ErrClosed.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

// Backup returns the path of the i-th backup; 0 is the live file.
func (w *RotatingWriter) Backup(i int) string {
	if i == 0 {
		return w.path
	}
	ext := filepath.Ext(w.path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(w.path, ext), i, ext)
}

// TeeWriter mirrors writes to both writers.
func TeeWriter(w1, w2 io.Writer) io.Writer {
	return io.MultiWriter(w1, w2)
}

// DefaultLogPath is iconify.log next to the config file.
func DefaultLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "Iconify", "iconify.log")
}

func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	w.f, w.size = f, info.Size()
	return nil
}

// shift drops the oldest backup, renumbers the rest and starts a new file.
func (w *RotatingWriter) shift() error {
	if w.f != nil {
		w.f.Close()
		w.f = nil
	}
	os.Remove(w.Backup(w.keep))
	for i := w.keep; i > 0; i-- {
		os.Rename(w.Backup(i-1), w.Backup(i))
	}
	return w.open()
}
