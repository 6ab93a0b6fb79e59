package common

import "fmt"

// Assert panics with a formatted message when cond is false. It is used for
// caller contract violations (ticking a dead hazard, sustaining an expired
// modifier) and does nothing in builds tagged `release`.
func Assert(cond bool, format string, args ...any) {
	if !assertionsEnabled || cond {
		return
	}
	panic(fmt.Sprintf("assertion failed: "+format, args...))
}

// AssertionsEnabled reports whether Assert is active in this build.
func AssertionsEnabled() bool {
	return assertionsEnabled
}
