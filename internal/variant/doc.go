// Package variant defines the typed cell value used by every table backend.
//
// A Value is a tagged union (empty, bool, string, unsigned integers, enum
// discriminant, list of strings, never) backed by a cty.Value, so values
// read from HCL configuration and values typed into the grid share one
// representation. Text coercion goes through the cty convert package.
//
// Absence of a value in a backend is not represented here: backends return
// (Value, false) for "no entry". KindNever marks a cell that cannot exist for
// its row/column combination and is never editable.
package variant
