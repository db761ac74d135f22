package task

import "time"

// IDGen hands out increasing IDs based on the wall clock.
// Two calls within the same millisecond still get distinct IDs, as does a
// call after the clock went backwards.
type IDGen struct {
	last ID
	now  func() time.Time
}

func NewIDGen(now func() time.Time) *IDGen {
	if now == nil {
		now = time.Now
	}
	return &IDGen{now: now}
}

func (g *IDGen) Next() ID {
	id := ID(g.now().UnixMilli())
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe makes sure IDs handed out later are above id
func (g *IDGen) Observe(id ID) {
	if id > g.last {
		g.last = id
	}
}
