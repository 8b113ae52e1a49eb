// Package cli is the shared command line of cmd/magnitude and
// cmd/gradient.
package cli
