// Package importer fills a variantstore.Store from delimited text and XLSX
// files.
//
// Both formats go through the same pipeline: optional leading rows are
// skipped, the header row (if any) is matched against the required columns
// of a columns.Set, and every following record becomes a row whose values
// are converted to the type of the column they land in. Problems are
// reported as a Status rather than an error so that rows read before a
// failure stay in the store and the host can show where reading stopped.
package importer
