package event

import (
	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
)

// InputEvents is a read-only, borrowed view over an ordered event list.
// The zero value is an empty list, as is a view over a nil or incomplete
// function table.
type InputEvents struct {
	vt *abi.InputEventsVTable
}

// NewInputEvents wraps a raw input list function table.
func NewInputEvents(vt *abi.InputEventsVTable) InputEvents {
	return InputEvents{vt: vt}
}

// Raw returns the underlying function table, for placing the list into a
// raw process struct.
func (l InputEvents) Raw() *abi.InputEventsVTable {
	return l.vt
}

// Len returns the number of events in the list.
func (l InputEvents) Len() uint32 {
	if l.vt == nil || l.vt.Size == nil {
		return 0
	}
	return l.vt.Size(l.vt.Ctx)
}

// Get returns the event at the given index, or nil when the index is out
// of range or the list implementation returned nothing for it.
func (l InputEvents) Get(index uint32) *UnknownEvent {
	if l.vt == nil || l.vt.Get == nil || index >= l.Len() {
		return nil
	}
	return FromRaw(l.vt.Get(l.vt.Ctx, index))
}

// Iter returns an iterator over all events in the list. Indexes the list
// implementation returns nothing for are skipped.
func (l InputEvents) Iter() *Iter {
	return &Iter{list: l, end: l.Len()}
}

// IterRange returns an iterator over the half-open index range
// [begin, end), clamped to the list's length.
func (l InputEvents) IterRange(begin, end uint32) *Iter {
	if n := l.Len(); end > n {
		end = n
	}
	if begin > end {
		begin = end
	}
	return &Iter{list: l, index: begin, end: end}
}

// Batch returns a batching iterator over the list. See Batcher.
func (l InputEvents) Batch() *Batcher {
	return &Batcher{list: l, len: l.Len()}
}

// Iter walks a half-open index range of an input event list.
type Iter struct {
	list  InputEvents
	index uint32
	end   uint32
}

// Next returns the next event, or false when the range is exhausted.
func (it *Iter) Next() (*UnknownEvent, bool) {
	for it.index < it.end {
		e := it.list.Get(it.index)
		it.index++
		if e != nil {
			return e, true
		}
	}
	return nil, false
}

// OutputEvents is an append-only, borrowed view over an event list. The
// zero value rejects every push.
type OutputEvents struct {
	vt *abi.OutputEventsVTable
}

// NewOutputEvents wraps a raw output list function table.
func NewOutputEvents(vt *abi.OutputEventsVTable) OutputEvents {
	return OutputEvents{vt: vt}
}

// Raw returns the underlying function table, for placing the list into a
// raw process struct.
func (l OutputEvents) Raw() *abi.OutputEventsVTable {
	return l.vt
}

// TryPush appends the event to the list. It returns an exhausted error when
// the list implementation refused the event, which usually means it ran out
// of space.
func (l OutputEvents) TryPush(e Event) error {
	if e == nil {
		return errors.NilPointer(errors.PhaseEvent, "event")
	}
	if l.vt == nil || l.vt.TryPush == nil {
		return errors.Exhausted(errors.PhaseEvent, "output event list is not writable")
	}
	if !l.vt.TryPush(l.vt.Ctx, e.EventHeader()) {
		return errors.Exhausted(errors.PhaseEvent, "output event list rejected event")
	}
	return nil
}
