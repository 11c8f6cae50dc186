// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: load the
// table definition, import the data file, then show the grid either in the
// terminal UI or as a one-shot headless dump. It is decoupled from any
// specific entrypoint like a CLI.
package app
