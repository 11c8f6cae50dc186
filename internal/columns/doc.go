// Package columns matches the columns an application requires against the
// column names discovered in a data source, such as a CSV header row.
//
// Matching is an exact, case-insensitive comparison against a column's name
// or one of its synonyms. Required columns always receive ColumnUIDs
// 0..n-1 in declaration order whether or not a source column was found for
// them. Unmatched source columns become adhoc columns and are numbered
// after the required ones, in source order.
package columns
