// Package assertx holds the one assertion helper the core uses for
// programmer-error invariants (spec §7: "assert/panic are acceptable since
// they signal programmer error, not input").
package assertx

import "fmt"

// Assertf panics with a formatted message if cond is false.
func Assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
