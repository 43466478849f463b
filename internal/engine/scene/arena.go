package scene

// Arena tracks the shapes one owner added to a Scene so they can all be
// removed together. Shapes added by anyone else are never touched.
type Arena struct {
	scene   Scene
	handles []Handle
}

// NewArena creates an arena over s.
func NewArena(s Scene) *Arena {
	return &Arena{scene: s}
}

// Add adds spec to the scene and records ownership of the handle.
func (a *Arena) Add(spec Spec) Handle {
	h := a.scene.AddShape(spec)
	a.handles = append(a.handles, h)
	return h
}

// Remove removes a single owned shape. Handles the arena does not own are
// ignored.
func (a *Arena) Remove(h Handle) {
	for i, o := range a.handles {
		if o == h {
			a.scene.RemoveShape(h)
			a.handles = append(a.handles[:i], a.handles[i+1:]...)
			return
		}
	}
}

// Release removes every owned shape and returns how many were removed.
// The arena stays usable afterwards.
func (a *Arena) Release() int {
	n := len(a.handles)
	for _, h := range a.handles {
		a.scene.RemoveShape(h)
	}
	a.handles = a.handles[:0]
	return n
}

// Len returns the number of owned shapes.
func (a *Arena) Len() int {
	return len(a.handles)
}

// Handles returns a copy of the owned handles.
func (a *Arena) Handles() []Handle {
	out := make([]Handle, len(a.handles))
	copy(out, a.handles)
	return out
}
