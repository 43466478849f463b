// Package scene holds the drawable shapes of the design viewer.
//
// Hosts implement Scene; the designer only ever adds and removes shapes
// through an Arena so that it can release exactly what it created.
package scene

import (
	"sync"
)

// Handle identifies a shape added to a Scene. The zero Handle is never issued.
type Handle uint64

// Scene is the scene-graph collaborator: it accepts shapes and hands back
// handles that remove them again.
type Scene interface {
	AddShape(spec Spec) Handle
	RemoveShape(h Handle)
}

// Entry is a shape stored in a Memory scene.
type Entry struct {
	Handle Handle
	Spec   Spec
}

// Memory is an in-process Scene. It is used by the headless CLI, the tests
// and as the retained shape list the GUI hosts draw from.
type Memory struct {
	mu      sync.Mutex
	next    Handle
	shapes  map[Handle]Spec
	order   []Handle
	version uint64
}

// NewMemory creates an empty scene.
func NewMemory() *Memory {
	return &Memory{shapes: make(map[Handle]Spec)}
}

// AddShape implements Scene.
func (m *Memory) AddShape(spec Spec) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	h := m.next
	m.shapes[h] = spec
	m.order = append(m.order, h)
	m.version++
	return h
}

// RemoveShape implements Scene. Unknown handles are ignored.
func (m *Memory) RemoveShape(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.shapes[h]; !ok {
		return
	}
	delete(m.shapes, h)
	for i, o := range m.order {
		if o == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.version++
}

// Get returns the shape for h.
func (m *Memory) Get(h Handle) (Spec, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.shapes[h]
	return s, ok
}

// Shapes returns a snapshot of all shapes in insertion order.
func (m *Memory) Shapes() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Entry, 0, len(m.order))
	for _, h := range m.order {
		out = append(out, Entry{Handle: h, Spec: m.shapes[h]})
	}
	return out
}

// Count returns the number of shapes of the given kind.
func (m *Memory) Count(k Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.shapes {
		if s.Kind() == k {
			n++
		}
	}
	return n
}

// Len returns the number of shapes.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shapes)
}

// Version increases on every mutation. Renderers compare it to decide
// whether to rebuild their buffers.
func (m *Memory) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}
