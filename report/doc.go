// Package report holds the outcome of a benchmark run and publishes it.
//
// A Report carries the timed events of one driver invocation together with
// the grid it ran on and the kernel implementation that was selected.
// Sinks deliver reports to a writer, a blobstore.Store or a DynamoDB table.
package report
