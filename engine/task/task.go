// Package task implements the cooperative coroutine scheduler: suspendable
// computations that yield a stream of waiters and are advanced once per
// engine tick. There is no parallelism; a task never observes another
// tick's state mid-resume.
package task

import "iter"

// Task is a suspendable computation. Each call to yield suspends the task
// on the given waiter; returning completes it. yield reports false when the
// task has been cancelled, in which case the task must return promptly.
type Task func(yield func(Waiter) bool)

// Box drives one running task. It lives in a coroutine_box component on the
// host entity; destroying that entity cancels the task.
type Box struct {
	next    func() (Waiter, bool)
	stop    func()
	current Waiter
	done    bool
}

// Start prepares the task. The body does not run until the first Invoke.
func Start(t Task) *Box {
	next, stop := iter.Pull(iter.Seq[Waiter](t))
	return &Box{next: next, stop: stop}
}

// Invoke advances the task by at most one scheduling step:
//   - a pending waiter that is not ready leaves the task suspended;
//   - a pending terminate waiter cancels the task;
//   - otherwise the task resumes; run-inline waiters keep it running
//     within this same Invoke.
//
// Returns false once the task has completed or been cancelled, signalling
// the host entity should be destroyed. A panic inside the task propagates
// out of Invoke.
func (b *Box) Invoke() bool {
	if b.done {
		return false
	}
	for {
		if b.current != nil {
			if b.current.Terminate() {
				b.Cancel()
				return false
			}
			if !b.current.Ready() {
				return true
			}
		}

		w, ok := b.next()
		if !ok {
			b.done = true
			return false
		}
		b.current = w

		if w.Terminate() {
			b.Cancel()
			return false
		}
		if !w.RunInline() {
			return true
		}
	}
}

// Done reports whether the task has completed or been cancelled.
func (b *Box) Done() bool {
	return b.done
}

// Cancel aborts the task without resuming it. Suspension points never
// resume after cancellation; tasks must not rely on running to completion.
func (b *Box) Cancel() {
	if b.done {
		return
	}
	b.done = true
	b.stop()
}
