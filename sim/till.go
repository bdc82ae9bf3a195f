package sim

import "fmt"

// Till is a single service station. It serves at most one buyer at a time.
type Till struct {
	ID             int // 1-based position in the pool
	IdleTicks      int // ticks spent with no buyer
	BusyTicks      int // ticks spent serving
	RemainingTicks int // ticks left on the current buyer; 0 means free
}

// Free reports whether the till can take a new buyer.
func (t *Till) Free() bool {
	return t.RemainingTicks == 0
}

// Assign starts serving a buyer that needs the given number of ticks.
func (t *Till) Assign(ticks int) {
	if ticks < 1 {
		panic(fmt.Sprintf("Assign: service time must be positive, got %d", ticks))
	}
	if !t.Free() {
		panic(fmt.Sprintf("Assign: till %d still has %d ticks remaining", t.ID, t.RemainingTicks))
	}
	t.RemainingTicks = ticks
}

// Advance moves the till forward by one tick.
func (t *Till) Advance() {
	if t.RemainingTicks == 0 {
		t.IdleTicks++
		return
	}
	t.BusyTicks++
	t.RemainingTicks--
}

// TillPool is the fixed, ordered set of tills in use for a run.
type TillPool struct {
	tills []*Till
}

// NewTillPool creates n idle tills numbered 1..n.
func NewTillPool(n int) *TillPool {
	tills := make([]*Till, n)
	for i := range tills {
		tills[i] = &Till{ID: i + 1}
	}
	return &TillPool{tills: tills}
}

// FindFree returns the lowest-numbered free till, or nil if every till is busy.
func (p *TillPool) FindFree() *Till {
	for _, t := range p.tills {
		if t.Free() {
			return t
		}
	}
	return nil
}

// Busy reports whether any till is still serving a buyer.
func (p *TillPool) Busy() bool {
	return p.FindBusy() != nil
}

// FindBusy returns the lowest-numbered till still serving, or nil.
func (p *TillPool) FindBusy() *Till {
	for _, t := range p.tills {
		if !t.Free() {
			return t
		}
	}
	return nil
}

// Advance moves every till forward by one tick.
func (p *TillPool) Advance() {
	for _, t := range p.tills {
		t.Advance()
	}
}

// Len returns the number of tills in the pool.
func (p *TillPool) Len() int {
	return len(p.tills)
}

// Tills returns the pool in till order.
// The returned slice is the pool's internal storage; callers MUST NOT modify it.
func (p *TillPool) Tills() []*Till {
	return p.tills
}
