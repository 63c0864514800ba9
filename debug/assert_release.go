//go:build !debug

// Package debug provides assertions that are checked with the debug build tag
// and compile to nothing otherwise.
//
// Code on the fatal error path must not fault a second time, so checks that
// could panic belong behind `if debug.Enabled {...}` and are typically run
// once at init.
package debug

// Enabled is true if built with the debug tag.
const Enabled = false

// Assert panics if b is false.
func Assert(b bool, message string) {}
