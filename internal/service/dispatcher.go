package service

import (
	"context"
	"errors"
	"time"

	"github.com/avencourt/uastack/internal/logger"
)

// ErrQueueClosed reports a post to a closed queue.
var ErrQueueClosed = errors.New("service: event queue closed")

// Queue is a multiple-producer single-consumer event queue. Producers
// (socket layer, timer service, application goroutines) post
// concurrently; the dispatcher alone drains it.
type Queue struct {
	ch     chan Event
	closed chan struct{}
}

// NewQueue builds a queue with the given buffer capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 256
	}
	return &Queue{
		ch:     make(chan Event, capacity),
		closed: make(chan struct{}),
	}
}

// Post enqueues an event, blocking while the queue is full. It fails
// once the queue is closed.
func (q *Queue) Post(ev Event) error {
	select {
	case <-q.closed:
		return ErrQueueClosed
	default:
	}
	select {
	case q.ch <- ev:
		return nil
	case <-q.closed:
		return ErrQueueClosed
	}
}

// Close stops the queue; pending events are still drained by the
// consumer.
func (q *Queue) Close() {
	select {
	case <-q.closed:
	default:
		close(q.closed)
	}
}

// TryRecv drains one event without blocking, for consumers that poll.
func (q *Queue) TryRecv() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return nil, false
	}
}

// Dispatcher runs the cooperative scheduling model: one goroutine
// dequeues events and runs the matching handler to completion. No
// handler blocks; long work is re-posted as follow-up events.
type Dispatcher struct {
	queue   *Queue
	handler func(Event)
}

// NewDispatcher binds a handler to a queue.
func NewDispatcher(queue *Queue, handler func(Event)) *Dispatcher {
	return &Dispatcher{queue: queue, handler: handler}
}

// Run drains the queue until the context is cancelled. Events from one
// producer are handled in FIFO order.
func (d *Dispatcher) Run(ctx context.Context) {
	logger.Debug("Service dispatcher running")
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Service dispatcher stopping")
			return
		case ev := <-d.queue.ch:
			d.handler(ev)
		}
	}
}

// TimerService posts events after a delay, turning time-based
// cancellation into ordinary queue events.
type TimerService struct {
	queue *Queue
}

// NewTimerService binds a timer service to the dispatcher queue.
func NewTimerService(queue *Queue) *TimerService {
	return &TimerService{queue: queue}
}

// Schedule posts ev to the queue after d. The returned timer can be
// stopped to cancel.
func (t *TimerService) Schedule(d time.Duration, ev Event) *time.Timer {
	return time.AfterFunc(d, func() {
		if err := t.queue.Post(ev); err != nil {
			logger.Warn("Dropping timer event", "error", err)
		}
	})
}
