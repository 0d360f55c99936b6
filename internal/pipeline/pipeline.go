// Package pipeline implements the bounded multi-producer/single-consumer
// coordination protocol between logging call sites and the background
// drainer: a mutex-guarded ring of cells, a condition variable that wakes
// the drainer, and the backoff policy applied when the ring is saturated.
package pipeline

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ringlog/ringlog/internal/cell"
	"github.com/ringlog/ringlog/internal/metrics"
	"github.com/ringlog/ringlog/internal/ring"
)

// backoffWindow is how long, after a dropped record, further drops are
// silently suppressed instead of each emitting its own stderr diagnostic.
const backoffWindow = 5 * time.Second

// tickInterval bounds how long the drainer can sleep on the condition
// variable without a producer signal. sync.Cond has no native timed wait,
// so a background ticker goroutine periodically broadcasts to stand in
// for one.
const tickInterval = time.Second

// Pipeline coordinates producers and a single consumer over a ring of
// cells.
type Pipeline struct {
	mu      sync.Mutex
	cond    *sync.Cond
	ring    *ring.Ring
	metrics *metrics.Collector

	lastLostTS int64
	stopped    bool

	tickerStop chan struct{}
	tickerDone chan struct{}
}

// New builds a Pipeline over a ring with cellCount initial cells of
// cellSize bytes each, capped at memCap total bytes.
func New(cellCount, cellSize int, memCap int64, m *metrics.Collector) *Pipeline {
	p := &Pipeline{
		ring:       ring.New(cellCount, cellSize, memCap),
		metrics:    m,
		tickerStop: make(chan struct{}),
		tickerDone: make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.tick()
	return p
}

// tick broadcasts once per tickInterval so DrainOnce's wait is bounded even
// when no producer ever signals.
func (p *Pipeline) tick() {
	defer close(p.tickerDone)
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			p.cond.Broadcast()
		case <-p.tickerStop:
			return
		}
	}
}

// Append enqueues a fully formatted record. It never blocks on I/O and
// returns immediately; the record is either copied into a cell or, under
// sustained overflow, silently dropped per the backoff policy.
func (p *Pipeline) Append(line []byte) {
	now := time.Now().Unix()

	p.mu.Lock()

	if p.lastLostTS != 0 && now-p.lastLostTS < int64(backoffWindow/time.Second) {
		p.mu.Unlock()
		p.metrics.TrackDropped()
		return
	}

	prod := p.ring.Producer()
	signal := false
	dropped := false
	grew := false

	switch {
	case prod.Status() == cell.Free && prod.Avail() >= len(line):
		prod.Append(line)

	case prod.Status() == cell.Free:
		prod.SetStatus(cell.Full)
		signal = true
		next := p.ring.ProducerNext()
		switch {
		case next.Status() == cell.Free:
			p.ring.AdvanceProducer()
			p.ring.Producer().Append(line)
		case p.ring.CanGrow():
			newCell := p.ring.Insert()
			newCell.Append(line)
			grew = true
		default:
			p.ring.AdvanceProducer()
			p.lastLostTS = now
			dropped = true
		}

	default: // prod.Status() == cell.Full
		p.lastLostTS = now
		dropped = true
	}

	p.mu.Unlock()

	if signal {
		p.cond.Signal()
	}
	if grew {
		p.metrics.TrackCellGrowth()
	}
	if dropped {
		p.metrics.TrackDropped()
		fmt.Fprintln(os.Stderr, "ringlog: no more log space, dropping records")
		return
	}
	p.metrics.TrackAccepted()
}

// WaitForWork blocks until there is a cell ready to drain or the pipeline
// has been stopped with nothing left to drain. It returns the cell to
// persist, or ok=false once shutdown is complete.
func (p *Pipeline) WaitForWork() (c *cell.Cell, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for {
		cons := p.ring.Consumer()

		if cons.Status() == cell.Full {
			return cons, true
		}

		if !cons.Empty() && p.ring.ProducerIsConsumer() {
			cons.SetStatus(cell.Full)
			p.ring.AdvanceProducer()
			return cons, true
		}

		if p.stopped {
			return nil, false
		}

		p.cond.Wait()
	}
}

// FinishDrain clears the just-written cell and advances the consumer
// cursor past it. Call after the cell's bytes have been durably handed to
// the sink.
func (p *Pipeline) FinishDrain(c *cell.Cell) {
	p.mu.Lock()
	c.Clear()
	p.ring.AdvanceConsumer()
	p.mu.Unlock()
}

// Stop requests a graceful shutdown: the drainer will finish draining every
// already-full cell plus any partially filled producer cell, then
// WaitForWork returns ok=false.
func (p *Pipeline) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
	p.cond.Broadcast()
	close(p.tickerStop)
	<-p.tickerDone
}

// CellCount returns the current number of cells in the ring, for metrics
// snapshots.
func (p *Pipeline) CellCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ring.Len()
}

// Drained reports whether every cell has been persisted and nothing is
// waiting behind the producer cursor. Used by Flush to poll for an empty
// pipeline without tearing down the drainer.
func (p *Pipeline) Drained() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ring.ProducerIsConsumer() && p.ring.Consumer().Empty()
}
