// Package grid is the controller between a backend.Backend and whatever
// draws it.
//
// A Grid is created once and driven by calling Frame once per UI frame.
// Each frame runs in a fixed order:
//
//  1. Poll the backend, read its pending one-shot flags and refresh the
//     cached column order, clamping or dropping the selection if rows or
//     columns went away.
//  2. Apply pointer and keyboard events to the selection. Writes these
//     events cause (committed edits, added cells and rows, skips, clear)
//     are collected as Mutation values instead of being applied.
//  3. Handle paste events and paste decisions. Pastes write through to the
//     backend immediately.
//  4. Draw the header and the visible rows through the Surface.
//  5. Apply the collected mutations, then archive the backend's flags so
//     host code sees them through OneShotFlags during the next frame.
//
// Visual indices taken from events are resolved against the backend as it
// was at the start of the frame, because no cell or row is written before
// step 3. Column mapping choices from step 2 are stored right away; they do
// not move rows or columns.
//
// Grids are not safe for concurrent use; a Grid and its backend belong to
// one frame loop.
package grid
