package sim

// Pool hands out preallocated projectile slots by registry index. It never
// allocates: acquiring flips a slot's Active flag, retiring flips it back.
type Pool struct {
	slots []int
}

func newPool(slots []int) Pool {
	return Pool{slots: slots}
}

// Acquire activates the first idle slot and returns its index. ok is false
// when every slot is in flight; the request is then simply dropped.
func (p *Pool) Acquire(objs []Object) (idx int, ok bool) {
	for _, i := range p.slots {
		if !objs[i].Active {
			objs[i].activate()
			return i, true
		}
	}
	return -1, false
}

// Slots returns the registry indices the pool currently draws from.
func (p *Pool) Slots() []int { return p.slots }

// InFlight counts the pool's active slots.
func (p *Pool) InFlight(objs []Object) int {
	n := 0
	for _, i := range p.slots {
		if objs[i].Active {
			n++
		}
	}
	return n
}

// RetireAll returns every slot to idle.
func (p *Pool) RetireAll(objs []Object) {
	for _, i := range p.slots {
		objs[i].deactivate()
	}
}

// rebind points the pool at a different set of slots of the same capacity
// class (bullets to lasers).
func (p *Pool) rebind(slots []int) {
	p.slots = slots
}
