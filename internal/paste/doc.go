// Package paste moves rectangular blocks of text between the clipboard and
// a backend.
//
// The clipboard format is the one spreadsheets exchange: cells separated by
// tabs, rows by newlines. Pasting is split in two. Engine.Begin parses the
// text and compares the block with the selection; a block that fits exactly
// is returned as a Job to apply right away, anything else is held until the
// user answers a Prompt through Engine.Resolve. Apply then writes a Job into
// a backend and reports every cell it touched.
package paste
