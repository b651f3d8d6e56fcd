package orbit

// TrailBuffer records the last N positions of a body into a fixed ring so the
// renderer can draw a fading trail. A zero-capacity buffer records nothing.
type TrailBuffer struct {
	points    []Vec2
	nextIndex int
	size      int
}

// NewTrailBuffer returns an empty buffer holding at most capacity points.
func NewTrailBuffer(capacity int) *TrailBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &TrailBuffer{points: make([]Vec2, capacity)}
}

// Push appends p, evicting the oldest point when the buffer is full.
func (t *TrailBuffer) Push(p Vec2) {
	if len(t.points) == 0 {
		return
	}
	t.points[t.nextIndex] = p
	t.nextIndex++
	if t.nextIndex >= len(t.points) {
		t.nextIndex = 0
	}
	if t.size < len(t.points) {
		t.size++
	}
}

// PopOldest drops the oldest point. It reports false when the buffer is empty.
func (t *TrailBuffer) PopOldest() bool {
	if t.size == 0 {
		return false
	}
	t.size--
	return true
}

// Len returns the number of recorded points.
func (t *TrailBuffer) Len() int { return t.size }

// Cap returns the maximum number of points the buffer holds.
func (t *TrailBuffer) Cap() int { return len(t.points) }

// Reset empties the buffer without releasing its storage.
func (t *TrailBuffer) Reset() {
	t.size = 0
	t.nextIndex = 0
}

// Snapshot returns the recorded points, oldest first.
func (t *TrailBuffer) Snapshot() []Vec2 {
	return t.AppendTo(make([]Vec2, 0, t.size))
}

// AppendTo appends the recorded points to dst, oldest first.
func (t *TrailBuffer) AppendTo(dst []Vec2) []Vec2 {
	if t.size == 0 {
		return dst
	}
	// oldest sits size slots behind the write cursor
	idx := t.nextIndex - t.size
	if idx < 0 {
		idx += len(t.points)
	}
	for i := 0; i < t.size; i++ {
		dst = append(dst, t.points[idx])
		idx++
		if idx >= len(t.points) {
			idx = 0
		}
	}
	return dst
}
