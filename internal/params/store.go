package params

import (
	"sync"
	"sync/atomic"
)

// Store publishes Params snapshots. There is one writer (the control
// surface) and any number of readers; readers never lock and always get a
// whole snapshot, never a mix of two writes.
type Store struct {
	mu      sync.Mutex // serializes writers
	cur     atomic.Pointer[Params]
	version atomic.Uint64
}

func NewStore(initial Params) *Store {
	s := &Store{}
	s.cur.Store(&initial)
	return s
}

// Load returns the latest committed snapshot.
func (s *Store) Load() Params {
	return *s.cur.Load()
}

// Version increments on every commit. Readers may use it to skip work when
// nothing changed.
func (s *Store) Version() uint64 {
	return s.version.Load()
}

// Set commits p as the new snapshot.
func (s *Store) Set(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(p)
}

// Update applies fn to a copy of the current snapshot and commits the result.
func (s *Store) Update(fn func(Params) Params) Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(*s.cur.Load())
	s.commit(next)
	return next
}

func (s *Store) commit(p Params) {
	s.cur.Store(&p)
	s.version.Add(1)
}

func (s *Store) ToggleMute() Params {
	return s.Update(func(p Params) Params { p.Muted = !p.Muted; return p })
}

func (s *Store) TogglePause() Params {
	return s.Update(func(p Params) Params { p.Paused = !p.Paused; return p })
}

func (s *Store) CycleCamera() Params {
	return s.Update(func(p Params) Params { p.Camera = p.Camera.Next(); return p })
}

func (s *Store) CycleDesign() Params {
	return s.Update(func(p Params) Params { p.Design = p.Design.Next(); return p })
}

func (s *Store) SetDesign(d Design) Params {
	return s.Update(func(p Params) Params { p.Design = d; return p })
}

func (s *Store) ApplyPreset(pr Preset) Params {
	return s.Update(func(p Params) Params { return p.Apply(pr) })
}

func (s *Store) Nudge(f Field, steps float64) Params {
	return s.Update(func(p Params) Params { return p.Nudge(f, steps) })
}
