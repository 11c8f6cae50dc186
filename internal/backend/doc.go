// Package backend defines the storage contract between a tabular data source
// and the grid widget.
//
// # Identities
//
// Rows and columns are addressed by stable identifiers (RowUID, ColumnUID)
// that survive sorting, filtering and column reordering. The grid only ever
// sees transient visual indices and maps them through RowUID on every frame.
//
// # One-shot flags
//
// A backend reports changes (columns reset, row set updated, cleared, ...)
// through OneShotFlags held in a FlagBuffer. Mutations write into the pending
// buffer. The grid reads the pending buffer at the start of a frame and calls
// ArchiveFlags at the end of it, which moves the pending flags to the archived
// buffer and resets pending. Host code reads OneShotFlags, which returns the
// archived buffer: every flag is visible exactly one frame after it was set
// and is never delivered twice.
//
// # Threading
//
// Backends are owned by a single frame loop and are not safe for concurrent
// use.
package backend
