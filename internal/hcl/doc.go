// Package hcl loads table definitions and grid view state from HCL files
// and writes view state back. It implements config.Loader and
// config.ViewWriter.
package hcl
