// Package database provides SQLite-based storage for problemreg.
//
// The SnapshotDB records every export as a snapshot: the catalog digest,
// the per-task and per-application tallies, the problem ids and the files
// written. Snapshots are listed and compared to show how the catalog
// changed between exports.
//
// SQLite is accessed through modernc.org/sqlite, a CGO-free driver, so the
// history is a single file in the XDG data directory.
package database
