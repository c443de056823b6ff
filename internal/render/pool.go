package render

import (
	"sync"
	"sync/atomic"
)

// Span is a half-open row range [Start, End).
type Span struct {
	Start, End int
}

// Len returns the number of rows in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Partition splits height rows into n contiguous spans. Every worker gets
// height/n rows and the last height%n workers get one extra. Spans may be
// empty when height < n.
func Partition(height, n int) []Span {
	if n < 1 {
		n = 1
	}
	if height < 0 {
		height = 0
	}
	base, rem := height/n, height%n
	spans := make([]Span, n)
	start := 0
	for i := range spans {
		rows := base
		if i >= n-rem {
			rows++
		}
		spans[i] = Span{Start: start, End: start + rows}
		start += rows
	}
	return spans
}

// rowFunc renders rows [y0, y1) of f from s.
type rowFunc func(s *frameState, f *Frame, y0, y1 int)

type job struct {
	state *frameState
	frame *Frame
	rows  rowFunc
}

type worker struct {
	id    int
	span  Span
	start chan job
}

// Pool is a fixed set of row workers. One Dispatch runs at a time; it hands
// every worker the same job and returns once all of them have finished.
type Pool struct {
	workers []*worker
	height  int
	barrier sync.WaitGroup
	joined  sync.WaitGroup
	alive   atomic.Bool
}

// NewPool starts n workers. n below 1 is raised to 1.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{height: -1}
	p.alive.Store(true)
	for i := 0; i < n; i++ {
		w := &worker{id: i, start: make(chan job)}
		p.workers = append(p.workers, w)
		p.joined.Add(1)
		go p.run(w)
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

func (p *Pool) run(w *worker) {
	defer p.joined.Done()
	for j := range w.start {
		if w.span.Len() > 0 {
			j.rows(j.state, j.frame, w.span.Start, w.span.End)
		}
		p.barrier.Done()
	}
}

// resize recomputes the row spans. Workers only read their span after
// receiving a job, so this is safe between dispatches.
func (p *Pool) resize(height int) {
	if height == p.height {
		return
	}
	for i, s := range Partition(height, len(p.workers)) {
		p.workers[i].span = s
	}
	p.height = height
}

// Dispatch renders every row of f with fn and waits for all workers.
func (p *Pool) Dispatch(s *frameState, f *Frame, fn rowFunc) error {
	if !p.alive.Load() {
		return ErrClosed
	}
	p.resize(s.height)
	j := job{state: s, frame: f, rows: fn}
	p.barrier.Add(len(p.workers))
	for _, w := range p.workers {
		w.start <- j
	}
	p.barrier.Wait()
	return nil
}

// Close stops and joins all workers. It must not run concurrently with
// Dispatch.
func (p *Pool) Close() {
	if !p.alive.CompareAndSwap(true, false) {
		return
	}
	for _, w := range p.workers {
		close(w.start)
	}
	p.joined.Wait()
}
