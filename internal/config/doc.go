// Package config defines the format-agnostic configuration model of a table:
// its columns, how data files are imported into it and how the grid shows
// it, along with the Loader interface that fills the model from a source.
//
// The HCL implementation lives in the hcl package.
package config
