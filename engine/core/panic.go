package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// Panicf reports an unrecoverable invariant violation: the reason and a
// stacktrace are logged, then the process aborts with a non-zero exit code.
func Panicf(msg string, args ...interface{}) {
	reason := fmt.Sprintf(msg, args...)
	LogError("panic: %s\n%s", reason, debug.Stack())
	os.Exit(1)
}

// Ensure is a soft assertion. A failed condition is logged and execution
// continues. Returns the condition so callers can bail with a default value.
func Ensure(condition bool, msg string, args ...interface{}) bool {
	if !condition {
		LogError("ensure failed: %s", fmt.Sprintf(msg, args...))
	}
	return condition
}

// InstallPanicHandler converts an unwinding goroutine panic into the same
// log-and-abort path as Panicf. Deferred at the top of the engine entry
// points.
func InstallPanicHandler() {
	if r := recover(); r != nil {
		LogError("unhandled panic: %v\n%s", r, debug.Stack())
		os.Exit(1)
	}
}
