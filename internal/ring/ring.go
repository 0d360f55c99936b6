// Package ring implements the circular chain of cells that backs the
// logging pipeline. The chain is represented as an arena of cells plus
// parallel next/prev index slices rather than cells holding raw cyclic
// pointers to one another, so nothing in the structure owns a pointer
// cycle.
package ring

import "github.com/ringlog/ringlog/internal/cell"

// Ring owns every cell in the pipeline and the producer/consumer cursors
// into them. None of its methods are goroutine-safe; the pipeline
// coordinator holds a single mutex around every call.
type Ring struct {
	cells    []*cell.Cell
	next     []int
	prev     []int
	producer int
	consumer int
	cellSize int
	memCap   int64
}

// New builds a ring with n initial cells of cellSize bytes each, with a
// hard ceiling of memCap total bytes across all cells (including future
// growth).
func New(n, cellSize int, memCap int64) *Ring {
	if n < 1 {
		n = 1
	}
	r := &Ring{
		cells:    make([]*cell.Cell, n),
		next:     make([]int, n),
		prev:     make([]int, n),
		cellSize: cellSize,
		memCap:   memCap,
	}
	for i := 0; i < n; i++ {
		r.cells[i] = cell.New(cellSize)
		r.next[i] = (i + 1) % n
		r.prev[i] = (i - 1 + n) % n
	}
	return r
}

// Len returns the current number of cells.
func (r *Ring) Len() int { return len(r.cells) }

// CellSize returns the fixed capacity of each cell.
func (r *Ring) CellSize() int { return r.cellSize }

// Producer returns the cell currently designated as the producer cursor.
func (r *Ring) Producer() *cell.Cell { return r.cells[r.producer] }

// Consumer returns the cell currently designated as the consumer cursor.
func (r *Ring) Consumer() *cell.Cell { return r.cells[r.consumer] }

// ProducerIsConsumer reports whether the producer and consumer cursors
// point at the same cell.
func (r *Ring) ProducerIsConsumer() bool { return r.producer == r.consumer }

// ProducerNext returns the cell immediately after the producer cursor,
// without moving the cursor.
func (r *Ring) ProducerNext() *cell.Cell { return r.cells[r.next[r.producer]] }

// AdvanceProducer moves the producer cursor forward by one cell.
func (r *Ring) AdvanceProducer() { r.producer = r.next[r.producer] }

// AdvanceConsumer moves the consumer cursor forward by one cell.
func (r *Ring) AdvanceConsumer() { r.consumer = r.next[r.consumer] }

// CanGrow reports whether inserting one more cell would keep the ring
// within its memory ceiling.
func (r *Ring) CanGrow() bool {
	return int64(len(r.cells)+1)*int64(r.cellSize) <= r.memCap
}

// Insert splices a fresh, free cell immediately after the producer cursor
// and moves the producer cursor onto it. It returns the new cell.
func (r *Ring) Insert() *cell.Cell {
	newIdx := len(r.cells)
	newCell := cell.New(r.cellSize)

	afterIdx := r.next[r.producer]

	r.cells = append(r.cells, newCell)
	r.next = append(r.next, afterIdx)
	r.prev = append(r.prev, r.producer)

	r.next[r.producer] = newIdx
	r.prev[afterIdx] = newIdx

	r.producer = newIdx
	return newCell
}

// Verify walks the ring forward from cell 0 and reports whether the walk
// returns to the start in exactly Len() steps, checking at every step that
// prev undoes next (which makes the backward walk return in Len() steps
// too). It exists for tests; production code never calls it on the hot
// path.
func (r *Ring) Verify() bool {
	n := len(r.cells)
	idx := 0
	for i := 0; i < n; i++ {
		if r.prev[r.next[idx]] != idx {
			return false
		}
		idx = r.next[idx]
		if idx == 0 && i < n-1 {
			return false
		}
	}
	return idx == 0
}
