// Package export writes layout artifacts: OBJ meshes, a GeoJSON footprint
// and a top-down layout plot.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrEmptyPayload is returned when a sink is asked to emit no bytes.
var ErrEmptyPayload = errors.New("empty payload")

// Sink receives named artifacts.
type Sink interface {
	Emit(name string, data []byte) error
}

// DirSink writes artifacts into a directory. Each file is written to a
// temporary name and renamed into place, so a failed export never leaves
// a partial file behind.
type DirSink struct {
	Dir string
}

// Emit implements Sink.
func (s DirSink) Emit(name string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("emit %s: %w", name, ErrEmptyPayload)
	}
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("emit %q: invalid file name", name)
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("emit %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("emit %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.Dir, name))
}

// MemorySink keeps artifacts in memory.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Emit implements Sink. Emitting a name again replaces its content.
func (s *MemorySink) Emit(name string, data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("emit %s: %w", name, ErrEmptyPayload)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return nil
}

// File returns the content emitted under name.
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// Names returns the emitted names in sorted order.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for n := range s.files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
