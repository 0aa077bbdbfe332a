// Package store provides SQLite persistence for dispatch observability.
//
// Every dispatch emits a record (capability, outcome, error kind, duration)
// which the Recorder persists fire-and-forget. Summary queries aggregate the
// records for the health command and admin surfaces. The store is an
// external collaborator of the dispatch path, never a blocking dependency.
package store
