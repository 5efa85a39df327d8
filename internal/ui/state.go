package ui

// State is a single observable value. Watchers run after every change, in registration order.
type State[T comparable] struct {
	value    T
	watchers map[int]func(T)
	order    []int
	nextID   int
}

// NewState returns a State holding initial.
func NewState[T comparable](initial T) *State[T] {
	return &State[T]{value: initial, watchers: make(map[int]func(T))}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	return s.value
}

// Set stores v and notifies watchers. Setting the current value is a no-op.
func (s *State[T]) Set(v T) {
	if v == s.value {
		return
	}
	s.value = v
	for _, id := range append([]int(nil), s.order...) {
		if fn, ok := s.watchers[id]; ok {
			fn(v)
		}
	}
}

// Update sets the value computed from the current one.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Watch registers fn, runs it once with the current value and returns a function that unregisters it.
func (s *State[T]) Watch(fn func(T)) (stop func()) {
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.order = append(s.order, id)
	fn(s.value)
	return func() {
		if _, ok := s.watchers[id]; !ok {
			return
		}
		delete(s.watchers, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Scope tracks the mounted lifetime of a component: cleanups registered while mounted run once, in reverse, on Unmount.
type Scope struct {
	mounted  bool
	cleanups []func()
}

// Mount runs setup once. Later calls while mounted are ignored and return false.
func (s *Scope) Mount(setup func(s *Scope)) bool {
	if s.mounted {
		return false
	}
	s.mounted = true
	if setup != nil {
		setup(s)
	}
	return true
}

// Defer registers a cleanup for Unmount.
func (s *Scope) Defer(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

// Unmount runs the registered cleanups in reverse order. It is a no-op when not mounted.
func (s *Scope) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false
	cleanups := s.cleanups
	s.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Mounted reports whether the scope is between Mount and Unmount.
func (s *Scope) Mounted() bool {
	return s.mounted
}
