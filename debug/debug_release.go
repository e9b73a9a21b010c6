//go:build !debug

// Package debug holds assertions that cost nothing unless the debug build
// tag is set.  Not pretty, but the device path has no error channel to
// report through, so a loud panic during development is all we get.
package debug

// Enabled reports whether the debug build tag is set.  Wrap assertions that
// would themselves allocate or panic in `if debug.Enabled {...}` so release
// builds can eliminate them.
const Enabled = false

// Assert panics with message if cond is false.
func Assert(cond bool, message string) {}
