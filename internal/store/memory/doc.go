// Package memory provides an in-memory processor.ResultStore, suitable
// for tests and short-lived crawls where persistence across process
// restarts is not needed.
package memory
