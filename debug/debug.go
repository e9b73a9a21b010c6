//go:build debug

package debug

// Enabled reports whether the debug build tag is set.  Wrap assertions that
// would themselves allocate or panic in `if debug.Enabled {...}` so release
// builds can eliminate them.
const Enabled = true

// Assert panics with message if cond is false.
func Assert(cond bool, message string) {
	if !cond {
		panic(message)
	}
}
