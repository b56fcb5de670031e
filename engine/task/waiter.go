package task

import "time"

// Waiter gates a suspended task. The scheduler asks three questions each
// tick: may the task resume now, should it keep running within the same
// tick after resuming, and should it be aborted without resuming.
type Waiter interface {
	Ready() bool
	RunInline() bool
	Terminate() bool
}

type nextTickWaiter struct{}

func (nextTickWaiter) Ready() bool     { return true }
func (nextTickWaiter) RunInline() bool { return false }
func (nextTickWaiter) Terminate() bool { return false }

// ForNextTick suspends until the next scheduler tick: always ready, but
// never resumed inline, so each yield costs exactly one tick.
func ForNextTick() Waiter {
	return nextTickWaiter{}
}

type durationWaiter struct {
	start time.Time
	d     time.Duration
}

func (w durationWaiter) Ready() bool     { return time.Since(w.start) >= w.d }
func (w durationWaiter) RunInline() bool { return false }
func (w durationWaiter) Terminate() bool { return false }

// ForDuration suspends until at least d of wall-clock time has passed. The
// start timestamp is captured at construction.
func ForDuration(d time.Duration) Waiter {
	return durationWaiter{start: time.Now(), d: d}
}

type terminateWaiter struct{}

func (terminateWaiter) Ready() bool     { return false }
func (terminateWaiter) RunInline() bool { return false }
func (terminateWaiter) Terminate() bool { return true }

// Abort yields a waiter that destroys the task the next time the scheduler
// observes it.
func Abort() Waiter {
	return terminateWaiter{}
}

type inlineWaiter struct{}

func (inlineWaiter) Ready() bool     { return true }
func (inlineWaiter) RunInline() bool { return true }
func (inlineWaiter) Terminate() bool { return false }

// Inline yields control to the scheduler but asks to be resumed again
// within the same tick.
func Inline() Waiter {
	return inlineWaiter{}
}
