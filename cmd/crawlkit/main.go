// Package main provides the entry point for the crawlkit CLI.
//
// crawlkit is a generic, extensible concurrent crawling engine. It
// dispatches bounded-parallelism crawling sessions over a pluggable set
// of InputProcessors, persisting each session's result to a configurable
// store.
//
// Usage:
//
//	crawlkit submit <seed> [extra-seeds...]
//	crawlkit compare <result-id-a> <result-id-b>
//
// See --help for all available options.
package main

func main() {
	Execute()
}
