// Package resource bounds what a benchmark run may consume: concurrent
// kernel workers, driver buffer memory and upload bandwidth.
//
// A nil *Controller imposes no limits.
package resource
