package animation

import "sync"

// Store owns the sequence on display and a cursor into it. Advance (timer
// path) and Replace (configuration path) may be called concurrently.
//
// The zero value is an empty store ready for use.
type Store struct {
	mu     sync.Mutex
	frames Sequence
	cursor int
}

// Replace installs seq, taking ownership of its frames, and resets the cursor.
// The previous sequence is released. An empty seq is ignored and false is
// returned, leaving the current sequence and cursor untouched.
func (s *Store) Replace(seq Sequence) bool {
	if len(seq) == 0 {
		return false
	}

	s.mu.Lock()
	old := s.frames
	s.frames = seq
	s.cursor = 0
	s.mu.Unlock()

	// Readers retained anything they still hold while the lock was taken.
	old.Release()
	return true
}

// Advance moves the cursor forward, wrapping at the end, and returns the
// frame now under it. The frame carries a reference for the caller, who must
// Release it once displayed. Returns nil when the store is empty.
func (s *Store) Advance() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return nil
	}
	s.cursor = (s.cursor + 1) % len(s.frames)
	return s.retained()
}

// Current returns the frame under the cursor without advancing, retained for
// the caller. Returns nil when the store is empty.
func (s *Store) Current() *Frame {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.frames) == 0 {
		return nil
	}
	return s.retained()
}

// retained must be called with mu held. The store's own reference keeps the
// frame alive, so Retain cannot fail here.
func (s *Store) retained() *Frame {
	f := s.frames[s.cursor]
	f.Retain()
	return f
}

// Len returns the length of the installed sequence.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Cursor returns the current index.
func (s *Store) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Close releases every owned frame and empties the store. Safe to call more
// than once.
func (s *Store) Close() {
	s.mu.Lock()
	old := s.frames
	s.frames = nil
	s.cursor = 0
	s.mu.Unlock()

	old.Release()
}
