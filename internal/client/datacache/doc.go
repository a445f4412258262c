// Package datacache exposes the domain-shaped operations of the offline cache:
// query timestamps, bootstrap meta, the signed-in user, settings, folders,
// per-folder messages, upload progress and file blobs.
//
// Every getter has a fixed fallback taken from the policy table and never
// fails. Every setter updates memory immediately and persists in the
// background; persistence errors go to the cache's FailureObserver.
//
// Resets write the empty value for a concept instead of removing its key, so
// the next read is served from memory.
package datacache
