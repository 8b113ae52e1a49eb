// Package cpu detects the host instruction set once at init and selects the
// kernel loop shape to run.
//
// The selection can be forced with AGNOSTIC_KERNEL=generic|unrolled. An
// unknown value is ignored.
package cpu
