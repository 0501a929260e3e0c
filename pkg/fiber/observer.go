package fiber

import "time"

// CommitStats summarizes one committed render pass.
type CommitStats struct {
	Placements int
	Updates    int
	Moves      int // Keyed repositionings of reused nodes
	Deletions  int
	Effects    int // Effects flushed after the commit
	Duration   time.Duration
}

// Mutations returns the total number of tree mutations in the pass.
func (s CommitStats) Mutations() int {
	return s.Placements + s.Updates + s.Moves + s.Deletions
}

// Observer receives scheduler lifecycle signals. Implementations must
// be cheap: WorkPerformed and Yielded fire on the scheduler loop.
type Observer interface {
	// RenderScheduled fires when a render pass is armed. Repeated
	// triggers before the callback runs coalesce into one signal.
	RenderScheduled()

	// WorkPerformed fires once per scheduler callback with the number
	// of work units completed in that slice.
	WorkPerformed(units int)

	// Yielded fires when a callback ran out of budget with work
	// remaining and re-armed itself.
	Yielded()

	// Committed fires after a pass was committed and its effects
	// flushed.
	Committed(stats CommitStats)
}

// NopObserver is an Observer that ignores every signal. Embed it to
// implement a subset of the interface.
type NopObserver struct{}

func (NopObserver) RenderScheduled()      {}
func (NopObserver) WorkPerformed(int)     {}
func (NopObserver) Yielded()              {}
func (NopObserver) Committed(CommitStats) {}

// MultiObserver fans signals out to several observers in order.
func MultiObserver(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

func (m multiObserver) RenderScheduled() {
	for _, o := range m {
		o.RenderScheduled()
	}
}

func (m multiObserver) WorkPerformed(units int) {
	for _, o := range m {
		o.WorkPerformed(units)
	}
}

func (m multiObserver) Yielded() {
	for _, o := range m {
		o.Yielded()
	}
}

func (m multiObserver) Committed(stats CommitStats) {
	for _, o := range m {
		o.Committed(stats)
	}
}
