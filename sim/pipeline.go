package sim

// ReplenishmentPipeline models order lead time as a ring of leadTime
// slots, one per day-within-lead-time. An order placed at the end of day
// d lands in slot (d + leadTime - 1) mod leadTime and is received on the
// first later day whose index maps to that slot, so the placement day
// counts toward the lead time.
//
// Overwrite semantics: scheduling into a slot that still holds an
// unconsumed quantity replaces it, it never accumulates. This reproduces
// the reference policy; see the replace-not-add note in DESIGN.md.
//
// Trial-scoped: created fresh per trial, discarded after reduction.
// Orders still in flight when the 365-day horizon ends are never
// delivered.
type ReplenishmentPipeline struct {
	slots []int64
}

// NewReplenishmentPipeline returns an empty pipeline with leadTime slots.
// leadTime is validated by NewEngine before any pipeline is built.
func NewReplenishmentPipeline(leadTime int) *ReplenishmentPipeline {
	return &ReplenishmentPipeline{slots: make([]int64, leadTime)}
}

// ArrivalDueToday returns and clears the quantity scheduled for the
// current day's ring slot. Zero when no truck is due.
func (p *ReplenishmentPipeline) ArrivalDueToday(day int) int64 {
	slot := day % len(p.slots)
	qty := p.slots[slot]
	p.slots[slot] = 0
	return qty
}

// Schedule records an order placed on day, due one full lead time later.
// A pending quantity already in the target slot is overwritten.
func (p *ReplenishmentPipeline) Schedule(day int, qty int64) {
	p.slots[(day+len(p.slots)-1)%len(p.slots)] = qty
}

// Pending returns the total undelivered quantity across all slots.
func (p *ReplenishmentPipeline) Pending() int64 {
	var total int64
	for _, q := range p.slots {
		total += q
	}
	return total
}
