// Package keys implements the keys-currently-down set: a LIFO ordered
// by press time, backed by a fixed-capacity node pool rather than a
// growable slice or linked allocator.
package keys

// Capacity is the maximum number of simultaneously-down keys tracked.
const Capacity = 16

// Down is one entry in the keys-currently-down set.
type Down struct {
	Keycode           uint8
	PressedAtMS       int64
	Repeating         bool
	Sent              bool
	InhibitAutoRepeat bool

	prev, next int // intrusive list links into Set.nodes; -1 = none
	inUse      bool
}

// Set is a LIFO of Down entries ordered newest-first. Push and Remove
// look the keycode up with a linear scan, so they are O(n) like the
// forward scans; only the relinking itself is O(1).
type Set struct {
	nodes [Capacity]Down
	free  []int
	head  int // index of newest entry, or -1 if empty
	tail  int // index of oldest entry, or -1 if empty
}

// NewSet returns an empty key-down set.
func NewSet() *Set {
	s := &Set{head: -1, tail: -1}
	s.free = make([]int, 0, Capacity)
	for i := Capacity - 1; i >= 0; i-- {
		s.free = append(s.free, i)
	}
	return s
}

// Push prepends a new entry for keycode at pressedAtMS, returning
// false if the set is full, keycode is zero, or keycode is already
// down.
func (s *Set) Push(keycode uint8, pressedAtMS int64) (*Down, bool) {
	if keycode == 0x00 {
		return nil, false
	}
	if _, ok := s.Find(keycode); ok {
		return nil, false
	}
	if len(s.free) == 0 {
		return nil, false
	}

	idx := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]

	n := &s.nodes[idx]
	*n = Down{Keycode: keycode, PressedAtMS: pressedAtMS, prev: -1, next: s.head, inUse: true}

	if s.head != -1 {
		s.nodes[s.head].prev = idx
	}
	s.head = idx
	if s.tail == -1 {
		s.tail = idx
	}
	return n, true
}

// Remove deletes the entry for keycode, if present.
func (s *Set) Remove(keycode uint8) bool {
	idx, ok := s.indexOf(keycode)
	if !ok {
		return false
	}
	n := &s.nodes[idx]
	if n.prev != -1 {
		s.nodes[n.prev].next = n.next
	} else {
		s.head = n.next
	}
	if n.next != -1 {
		s.nodes[n.next].prev = n.prev
	} else {
		s.tail = n.prev
	}
	n.inUse = false
	s.free = append(s.free, idx)
	return true
}

// Find returns the entry for keycode and whether it exists. The
// returned pointer aliases internal storage and is valid until the
// next Push/Remove.
func (s *Set) Find(keycode uint8) (*Down, bool) {
	idx, ok := s.indexOf(keycode)
	if !ok {
		return nil, false
	}
	return &s.nodes[idx], true
}

func (s *Set) indexOf(keycode uint8) (int, bool) {
	for i := s.head; i != -1; i = s.nodes[i].next {
		if s.nodes[i].Keycode == keycode {
			return i, true
		}
	}
	return 0, false
}

// Len returns the number of keys currently down.
func (s *Set) Len() int {
	n := 0
	for i := s.head; i != -1; i = s.nodes[i].next {
		n++
	}
	return n
}

// Empty reports whether no keys are currently down.
func (s *Set) Empty() bool {
	return s.head == -1
}

// ForEach walks the set newest-first, stopping early if fn returns false.
func (s *Set) ForEach(fn func(*Down) bool) {
	for i := s.head; i != -1; {
		n := &s.nodes[i]
		next := n.next
		if !fn(n) {
			return
		}
		i = next
	}
}
