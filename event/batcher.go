package event

// Batcher partitions an ordered event list into groups of events sharing
// the exact same timestamp, pairing each group with the half-open sample
// interval it covers. The intervals tile the whole block: the first batch
// always starts at sample 0 (and is empty if the first event is later),
// and the last batch has no end.
//
// Out-of-order lists are tolerated: a timestamp differing from the current
// group always closes the batch, and reported batch starts are clamped so
// they never decrease.
type Batcher struct {
	list    InputEvents
	len     uint32
	pos     uint32
	cur     uint32
	started bool
	ended   bool
}

// Batch is one group of same-time events together with the sample interval
// [FirstSample, NextSample) it covers.
type Batch struct {
	list    InputEvents
	begin   uint32
	end     uint32
	first   uint32
	next    uint32
	hasNext bool
}

// FirstSample returns the first sample of the interval this batch covers.
// The batch's events apply starting at this sample.
func (b Batch) FirstSample() uint32 {
	return b.first
}

// NextSample returns the first sample of the next batch, or false for the
// last batch, whose interval extends to the end of the block.
func (b Batch) NextSample() (uint32, bool) {
	return b.next, b.hasNext
}

// IsEmpty reports whether the batch holds no events.
func (b Batch) IsEmpty() bool {
	return b.begin == b.end
}

// Len returns the number of list slots in the batch.
func (b Batch) Len() uint32 {
	return b.end - b.begin
}

// Events returns an iterator over the batch's events.
func (b Batch) Events() *Iter {
	return &Iter{list: b.list, index: b.begin, end: b.end}
}

// Next returns the next batch, or false when the list is exhausted. Even an
// empty list yields one batch, covering the whole block.
//
// List slots the implementation returns nothing for never close a batch;
// they are grouped with the events around them and skipped on iteration.
func (b *Batcher) Next() (Batch, bool) {
	if b.ended {
		return Batch{}, false
	}
	if !b.started {
		b.started = true
		if b.len == 0 {
			b.ended = true
			return Batch{list: b.list}, true
		}
		if t, ok := b.firstTimeFrom(0); ok && t > 0 {
			b.cur = t
			return Batch{list: b.list, next: t, hasNext: true}, true
		}
	}

	start := b.cur
	groupTime, haveTime := b.firstTimeFrom(b.pos)
	begin := b.pos
	for b.pos < b.len {
		t, ok := b.timeAt(b.pos)
		if ok && haveTime && t != groupTime {
			break
		}
		b.pos++
	}
	if b.pos >= b.len {
		b.ended = true
		return Batch{list: b.list, begin: begin, end: b.pos, first: start}, true
	}
	next, _ := b.timeAt(b.pos)
	if next < start {
		next = start
	}
	b.cur = next
	return Batch{list: b.list, begin: begin, end: b.pos, first: start, next: next, hasNext: true}, true
}

// timeAt returns the timestamp of the event at the given index. Indexes out
// of range, or ones the list returns nothing for, report false.
func (b *Batcher) timeAt(index uint32) (uint32, bool) {
	if index >= b.len {
		return 0, false
	}
	e := b.list.Get(index)
	if e == nil {
		return 0, false
	}
	return e.Time(), true
}

// firstTimeFrom returns the timestamp of the first resolvable event at or
// after the given index.
func (b *Batcher) firstTimeFrom(index uint32) (uint32, bool) {
	for i := index; i < b.len; i++ {
		if t, ok := b.timeAt(i); ok {
			return t, true
		}
	}
	return 0, false
}
