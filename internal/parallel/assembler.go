package parallel

import "sync"

// RowAssembler is the shared buffer holding one in-progress image row.
//
// Engines publish one value per column. The publish that fills the last
// column raises the row-complete signal exactly once; the writer then
// drains the row with Flush and clears it with Reset before the next row
// starts. Every field is guarded by a single mutex.
//
// Thread safety: RowAssembler is safe for concurrent use.
type RowAssembler struct {
	mu sync.Mutex

	// values holds the in-progress row, indexed by column.
	values []uint8

	// filled counts publishes since the last Reset.
	filled int

	// written records which columns have been published since the last Reset.
	written slotSet

	// complete carries the row-complete signal. Capacity 1: a second send
	// before the writer drains it is a protocol violation.
	complete chan struct{}
}

// NewRowAssembler creates an empty assembler for rows of the given width.
// It panics with a *ProtocolViolation if width is not positive.
func NewRowAssembler(width int) *RowAssembler {
	if width <= 0 {
		violate("NewRowAssembler", "width %d must be positive", width)
	}
	return &RowAssembler{
		values:   make([]uint8, width),
		written:  newSlotSet(width),
		complete: make(chan struct{}, 1),
	}
}

// Publish stores v at column col and increments the completion counter.
// When the counter reaches Width, the row-complete signal is raised.
func (a *RowAssembler) Publish(col int, v uint8) {
	a.mu.Lock()
	defer a.mu.Unlock()

	width := len(a.values)
	if col < 0 || col >= width {
		violate("Publish", "column %d outside row of width %d", col, width)
	}
	if !a.written.mark(col) {
		violate("Publish", "column %d published twice in one row", col)
	}
	a.values[col] = v
	a.filled++

	if a.filled > width {
		violate("Publish", "completion counter %d exceeds width %d", a.filled, width)
	}
	if a.filled == width {
		select {
		case a.complete <- struct{}{}:
		default:
			violate("Publish", "row-complete signalled twice")
		}
	}
}

// Complete returns the channel that receives one value per assembled row.
func (a *RowAssembler) Complete() <-chan struct{} {
	return a.complete
}

// Filled returns the number of columns published since the last Reset.
func (a *RowAssembler) Filled() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filled
}

// Flush calls fn with the assembled row while holding the row-buffer
// lock. fn must not retain the slice. Flush panics with a
// *ProtocolViolation unless every column has been written exactly once
// since the last Reset.
func (a *RowAssembler) Flush(fn func(row []uint8) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	width := len(a.values)
	if a.filled != width {
		violate("Flush", "completion counter %d, want %d", a.filled, width)
	}
	if missing := a.written.firstMissing(); missing >= 0 {
		violate("Flush", "column %d never published", missing)
	}
	if n := a.written.count(); n != a.filled {
		violate("Flush", "%d columns marked, completion counter %d", n, a.filled)
	}
	return fn(a.values)
}

// Reset clears the completion counter and the written set for the next
// row. Values are left in place and overwritten by the next publishes.
func (a *RowAssembler) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.filled = 0
	a.written.clear()
}
