// Package mt schedules units of work (file reads, image decodes) on a
// fixed pool of worker goroutines and hands back pollable futures. The
// render thread polls; it never blocks on an incomplete task.
package mt

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

type ProgressKind int

const (
	ProgressQueued ProgressKind = iota
	ProgressReading
	ProgressConverting
	ProgressDone
)

// Progress is a snapshot of where a task currently is. NRead/NSize are
// only meaningful for ProgressReading.
type Progress struct {
	Kind  ProgressKind
	NRead int64
	NSize int64
}

func (p Progress) String() string {
	switch p.Kind {
	case ProgressQueued:
		return "queued"
	case ProgressReading:
		if p.NSize == 0 {
			return "0%"
		}
		return fmt.Sprintf("%.0f%%", float64(p.NRead)*100/float64(p.NSize))
	case ProgressConverting:
		return "converting..."
	case ProgressDone:
		return "done"
	}
	return "unknown"
}

const statusIdle = "idle"

// Pool runs scheduled tasks on a fixed number of workers. The queue is
// unbounded so that a startup burst of requests never stalls the
// scheduling thread while workers are busy; the pool itself is the
// concurrency limiter.
type Pool struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []job
	closed   bool
	statuses []atomic.Value // string, current task label per worker
	wg       sync.WaitGroup
}

type job struct {
	label string
	run   func()
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	p := &Pool{
		statuses: make([]atomic.Value, workers),
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < workers; i++ {
		p.statuses[i].Store(statusIdle)
		p.wg.Add(1)
		go p.worker(i)
	}
	log.Printf("[mt] started pool with %d workers", workers)
	return p
}

func (p *Pool) enqueue(j job) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		panic("mt: schedule on closed pool")
	}
	p.queue = append(p.queue, j)
	p.mu.Unlock()
	p.cond.Signal()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		j := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.statuses[id].Store(j.label)
		j.run()
		p.statuses[id].Store(statusIdle)
	}
}

func (p *Pool) Workers() int { return len(p.statuses) }

// ThreadStatus reports the label of the task a worker is running, or
// "idle".
func (p *Pool) ThreadStatus(i int) string {
	if i < 0 || i >= len(p.statuses) {
		return ""
	}
	return p.statuses[i].Load().(string)
}

// Close stops accepting work and waits for already queued tasks to
// finish naturally. Scheduling after Close panics.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}

// Future is the pollable handle for one scheduled task. The result is
// move-once: Take may be called a single time, after which the handle
// is consumed. Take blocks only if called before completion.
type Future[T any] struct {
	label    string
	done     chan struct{}
	progress atomic.Value // Progress

	result T
	err    error
	taken  bool
}

// Schedule queues fn on the pool. fn reports progress through report;
// the final ProgressDone is stored by the pool itself.
func Schedule[T any](p *Pool, label string, fn func(report func(Progress)) (T, error)) *Future[T] {
	f := &Future[T]{
		label: label,
		done:  make(chan struct{}),
	}
	f.progress.Store(Progress{Kind: ProgressQueued})
	p.enqueue(job{
		label: label,
		run: func() {
			f.result, f.err = fn(func(pr Progress) {
				f.progress.Store(pr)
			})
			f.progress.Store(Progress{Kind: ProgressDone})
			close(f.done)
		},
	})
	return f
}

func (f *Future[T]) Label() string { return f.label }

func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Progress polls the task's current progress without blocking.
func (f *Future[T]) Progress() Progress {
	return f.progress.Load().(Progress)
}

// Take waits for completion and consumes the result. Calling Take
// twice is a programming error and panics.
func (f *Future[T]) Take() (T, error) {
	<-f.done
	if f.taken {
		panic(fmt.Sprintf("mt: future %q taken twice", f.label))
	}
	f.taken = true
	return f.result, f.err
}
