package event

import (
	"sort"
	"unsafe"

	"github.com/freqlab/clapkit/abi"
)

// EventBuffer is an owned, growable store for heterogeneous event records.
// Records are copied in on Push and kept 8-byte aligned, so any event view
// obtained from the buffer can be safely downcast.
//
// Pushing may grow the backing storage; any *UnknownEvent previously
// obtained from Get is invalidated by Push, PushSorted and Clear.
type EventBuffer struct {
	words   []uint64
	offsets []uint32
}

// NewEventBuffer creates an empty event buffer.
func NewEventBuffer() *EventBuffer {
	return &EventBuffer{}
}

// NewEventBufferWithCapacity creates an empty event buffer with room for
// about the given number of bytes before it has to grow.
func NewEventBufferWithCapacity(bytes int) *EventBuffer {
	return &EventBuffer{
		words: make([]uint64, 0, (bytes+7)/8),
	}
}

// Len returns the number of events stored.
func (b *EventBuffer) Len() uint32 {
	return uint32(len(b.offsets))
}

// Clear removes all events, keeping the allocated storage.
func (b *EventBuffer) Clear() {
	b.words = b.words[:0]
	b.offsets = b.offsets[:0]
}

// Get returns a view over the event at the given index, or nil when the
// index is out of range. The view is only valid until the next mutation.
func (b *EventBuffer) Get(index uint32) *UnknownEvent {
	if index >= uint32(len(b.offsets)) {
		return nil
	}
	off := b.offsets[index]
	return (*UnknownEvent)(unsafe.Pointer(&b.words[off/8]))
}

// Push copies the event record into the buffer, appending it after all
// existing events regardless of its timestamp.
func (b *EventBuffer) Push(e Event) {
	h := e.EventHeader()
	if h == nil || h.Size < abi.EventHeaderSize {
		return
	}
	b.offsets = append(b.offsets, b.copyIn(h))
}

// PushSorted copies the event record into the buffer at the position that
// keeps event times non-decreasing. Appending events already in order is
// the fast path and costs the same as Push.
func (b *EventBuffer) PushSorted(e Event) {
	h := e.EventHeader()
	if h == nil || h.Size < abi.EventHeaderSize {
		return
	}
	off := b.copyIn(h)
	n := len(b.offsets)
	if n == 0 || b.timeAt(b.offsets[n-1]) <= h.Time {
		b.offsets = append(b.offsets, off)
		return
	}
	i := sort.Search(n, func(i int) bool {
		return b.timeAt(b.offsets[i]) > h.Time
	})
	b.offsets = append(b.offsets, 0)
	copy(b.offsets[i+1:], b.offsets[i:])
	b.offsets[i] = off
}

// Sort reorders the stored events so their times are non-decreasing.
// Events with equal times keep their relative order.
func (b *EventBuffer) Sort() {
	sort.SliceStable(b.offsets, func(i, j int) bool {
		return b.timeAt(b.offsets[i]) < b.timeAt(b.offsets[j])
	})
}

// InputEvents returns a read-only list view over the buffer. The view stays
// valid across mutations, always reflecting the buffer's current contents.
func (b *EventBuffer) InputEvents() InputEvents {
	return InputEvents{vt: &abi.InputEventsVTable{
		Ctx:  unsafe.Pointer(b),
		Size: bufferSize,
		Get:  bufferGet,
	}}
}

// OutputEvents returns an append-only list view over the buffer. Pushes
// through the view never fail; the buffer grows as needed.
func (b *EventBuffer) OutputEvents() OutputEvents {
	return OutputEvents{vt: &abi.OutputEventsVTable{
		Ctx:     unsafe.Pointer(b),
		TryPush: bufferTryPush,
	}}
}

// copyIn appends the record to word storage, zero padding to the next word
// boundary, and returns its byte offset.
func (b *EventBuffer) copyIn(h *abi.EventHeader) uint32 {
	off := uint32(len(b.words) * 8)
	nWords := (int(h.Size) + 7) / 8
	b.words = append(b.words, make([]uint64, nWords)...)
	src := unsafe.Slice((*byte)(unsafe.Pointer(h)), h.Size)
	dst := unsafe.Slice((*byte)(unsafe.Pointer(&b.words[off/8])), nWords*8)
	copy(dst, src)
	return off
}

func (b *EventBuffer) timeAt(off uint32) uint32 {
	return (*abi.EventHeader)(unsafe.Pointer(&b.words[off/8])).Time
}

func bufferSize(ctx unsafe.Pointer) uint32 {
	return (*EventBuffer)(ctx).Len()
}

func bufferGet(ctx unsafe.Pointer, index uint32) *abi.EventHeader {
	e := (*EventBuffer)(ctx).Get(index)
	if e == nil {
		return nil
	}
	return e.EventHeader()
}

func bufferTryPush(ctx unsafe.Pointer, h *abi.EventHeader) bool {
	if h == nil || h.Size < abi.EventHeaderSize {
		return false
	}
	b := (*EventBuffer)(ctx)
	b.offsets = append(b.offsets, b.copyIn(h))
	return true
}
