// Package tui hosts a grid.Grid in a terminal.
//
// Canvas is the grid.Surface: it collects what a frame draws and lays it
// out as text with column widths measured by go-runewidth. The bubbletea
// model turns key, mouse and paste messages into grid events and runs one
// frame per message. Dump renders a single frame without a terminal, which
// is what headless mode prints.
package tui
