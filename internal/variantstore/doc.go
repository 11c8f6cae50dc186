// Package variantstore provides an in-memory implementation of the
// backend.Backend interface that stores typed variant values.
//
// # Storage
//
// Cells live in a sparse map keyed by backend.CellCoord, so a coordinate
// without an entry reads as "no entry" rather than Empty. Rows keep their
// insertion order; the visible order is recomputed from the active row
// filters and sort key whenever rows or filters change.
//
// # Defaults
//
// Rows created through CreateRow or InsertRow get the declared default of
// every column the caller did not provide. Columns without a default are left
// without an entry.
//
// # When to Use
//
// This implementation is suitable for imported files (CSV, XLSX), for tests,
// and for any table that fits comfortably in memory. It is owned by a single
// frame loop and does no locking.
package variantstore
