// Package cache implements the two-tier cache that sits in front of a
// durable.Store.
//
// # Memory tier
//
// Values live in an unbounded in-process map. Nothing expires: an entry only
// changes through Write, Delete or Clear. Read returns the memoized value
// without touching the store; on a miss it loads the key once (concurrent
// misses share the load), falls back to the caller's value on any failure,
// and memoizes the result.
//
// # Write-behind
//
// Write and Delete update memory synchronously and hand the persistence op to
// a per-key FIFO. A drainer goroutine per active key applies ops in issue
// order, so the store never sees writes of one key reordered. Failures are
// reported to a FailureObserver and never to the writer.
package cache
