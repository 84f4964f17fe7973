package service

import (
	"context"
	"errors"
	"sync"
)

// errQueueClosed is returned when work is submitted after Close.
var errQueueClosed = errors.New("mirror queue closed")

type mirrorJob func(ctx context.Context)

// mirrorQueue runs remote mirror jobs one at a time in submission order,
// so operations on the same item reach the remote in the order they were
// issued locally.
type mirrorQueue struct {
	mu      sync.Mutex
	pending []mirrorJob
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
}

func newMirrorQueue() *mirrorQueue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &mirrorQueue{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
	go q.run()
	return q
}

func (q *mirrorQueue) submit(job mirrorJob) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return errQueueClosed
	}
	q.pending = append(q.pending, job)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

func (q *mirrorQueue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		for _, job := range batch {
			job(q.ctx)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-q.wake
	}
}

// flush waits until every job submitted before the call has run.
func (q *mirrorQueue) flush(ctx context.Context) error {
	barrier := make(chan struct{})
	if err := q.submit(func(context.Context) { close(barrier) }); err != nil {
		// Closed queues have nothing left to wait for once drained.
		select {
		case <-q.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close stops accepting work and waits for queued jobs to finish. When ctx
// ends first, the running and remaining jobs see a cancelled context, and
// close returns ctx's error once the worker has stopped. It is safe to call
// more than once.
func (q *mirrorQueue) close(ctx context.Context) error {
	q.mu.Lock()
	already := q.closed
	q.closed = true
	q.mu.Unlock()
	if !already {
		select {
		case q.wake <- struct{}{}:
		default:
		}
	}

	defer q.cancel()
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		q.cancel()
		<-q.done
		return ctx.Err()
	}
}
