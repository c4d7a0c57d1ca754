package eventlog

// ListenerKey identifies one registered cursor in a log's registry.
// Keys are allocated from a stable slot arena: removing a listener never
// invalidates other keys, and a freed slot is reused under a new generation
// so operations with a stale key are rejected instead of touching the new
// tenant's cursor.
type ListenerKey struct {
	index uint32
	gen   uint32
}

type slot struct {
	cursor int
	gen    uint32
	live   bool
}

// registry maps listener keys to cursors. It is not safe for concurrent use;
// the owning log provides synchronization where needed.
type registry struct {
	slots []slot
	free  []uint32
	live  int
}

func (r *registry) insert(cursor int) ListenerKey {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		s := &r.slots[idx]
		s.gen++
		s.cursor = cursor
		s.live = true
		r.live++
		return ListenerKey{index: idx, gen: s.gen}
	}
	r.slots = append(r.slots, slot{cursor: cursor, live: true})
	r.live++
	return ListenerKey{index: uint32(len(r.slots) - 1)}
}

func (r *registry) get(key ListenerKey) (*slot, bool) {
	if int(key.index) >= len(r.slots) {
		return nil, false
	}
	s := &r.slots[key.index]
	if !s.live || s.gen != key.gen {
		return nil, false
	}
	return s, true
}

// remove frees the key's slot and reports the cursor it held.
// Removing an unknown or stale key is a no-op.
func (r *registry) remove(key ListenerKey) (int, bool) {
	s, ok := r.get(key)
	if !ok {
		return 0, false
	}
	s.live = false
	r.free = append(r.free, key.index)
	r.live--
	return s.cursor, true
}

func (r *registry) len() int { return r.live }

// minCursor returns the smallest cursor over all live slots.
// ok is false when no listeners are registered.
func (r *registry) minCursor() (int, bool) {
	if r.live == 0 {
		return 0, false
	}
	min, seen := 0, false
	for i := range r.slots {
		if s := &r.slots[i]; s.live && (!seen || s.cursor < min) {
			min, seen = s.cursor, true
		}
	}
	return min, true
}

// rebase subtracts n from every live cursor after a front trim.
func (r *registry) rebase(n int) {
	for i := range r.slots {
		if r.slots[i].live {
			r.slots[i].cursor -= n
		}
	}
}
