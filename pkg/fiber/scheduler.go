package fiber

import (
	"sync"
	"time"
)

// DefaultTimeSlice is the deadline handed to each work callback by the
// default scheduler. Long enough to finish small trees in one slice,
// short enough that the host loop never stalls noticeably.
const DefaultTimeSlice = 4 * time.Millisecond

// yieldMargin is the safety margin below which the work loop stops
// pulling units and yields back to the scheduler.
const yieldMargin = time.Millisecond

// Scheduler abstracts the host's idle-time facility. Request schedules
// fn to run once with a deadline estimate; implementations must run
// callbacks one at a time, in request order.
type Scheduler interface {
	Request(fn func(deadline time.Time))
}

// FrameScheduler runs callbacks on a single dedicated goroutine,
// handing each a fixed time-slice deadline. It is the default host
// facility for a Runtime.
type FrameScheduler struct {
	slice    time.Duration
	work     chan func(time.Time)
	done     chan struct{}
	stopOnce sync.Once
}

// NewFrameScheduler creates and starts a FrameScheduler. A
// non-positive slice uses DefaultTimeSlice.
func NewFrameScheduler(slice time.Duration) *FrameScheduler {
	if slice <= 0 {
		slice = DefaultTimeSlice
	}
	s := &FrameScheduler{
		slice: slice,
		work:  make(chan func(time.Time), 16),
		done:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// Request implements Scheduler.
func (s *FrameScheduler) Request(fn func(deadline time.Time)) {
	select {
	case s.work <- fn:
	case <-s.done:
	}
}

// Stop shuts the scheduler loop down. Pending callbacks are dropped.
func (s *FrameScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *FrameScheduler) loop() {
	for {
		select {
		case fn := <-s.work:
			fn(time.Now().Add(s.slice))
		case <-s.done:
			return
		}
	}
}

// ManualScheduler queues callbacks until pumped explicitly. It makes
// render passes deterministic for tests and benchmarks: the caller
// chooses when a callback runs and what deadline it sees.
type ManualScheduler struct {
	mu    sync.Mutex
	queue []func(time.Time)
}

// NewManualScheduler creates an empty ManualScheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Request implements Scheduler.
func (s *ManualScheduler) Request(fn func(deadline time.Time)) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// Pending returns the number of queued callbacks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Pump runs the oldest queued callback with the given deadline.
// Returns false if the queue was empty.
func (s *ManualScheduler) Pump(deadline time.Time) bool {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return false
	}
	fn := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()

	fn(deadline)
	return true
}

// Drain pumps callbacks with generous deadlines until the queue is
// empty, including callbacks re-armed along the way. Returns the
// number of callbacks run.
func (s *ManualScheduler) Drain() int {
	n := 0
	for s.Pump(time.Now().Add(time.Hour)) {
		n++
	}
	return n
}
