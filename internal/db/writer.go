package db

import (
	"context"
	"fmt"
	"sync"
)

// WriteError reports a failed background write.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

type writeJob struct {
	op string
	fn func(context.Context) error
}

// Writer runs repository writes one at a time in submission order.
// Callers never wait for a write to finish. Failures are delivered on
// Errors and are not retried.
type Writer struct {
	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan writeJob
	errs   chan error
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewWriter starts a writer with the given queue depth.
func NewWriter(queue int) *Writer {
	if queue < 1 {
		queue = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer{
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(chan writeJob, queue),
		errs:   make(chan error, queue),
	}
	w.wg.Add(1)
	go w.run()
	return w
}

func (w *Writer) run() {
	defer w.wg.Done()
	defer close(w.errs)
	for job := range w.jobs {
		if err := job.fn(w.ctx); err != nil {
			select {
			case w.errs <- &WriteError{Op: job.op, Err: err}:
			default:
				// Nobody is draining errors; drop rather than stall writes.
			}
		}
	}
}

// Submit queues a write. It returns false once the writer is closed.
func (w *Writer) Submit(op string, fn func(context.Context) error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return false
	}
	w.jobs <- writeJob{op: op, fn: fn}
	return true
}

// Errors returns the channel of failed writes. It is closed after Close
// has drained the queue.
func (w *Writer) Errors() <-chan error {
	return w.errs
}

// Close stops accepting writes and waits for queued ones to finish.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()

	w.wg.Wait()
	w.cancel()
}
