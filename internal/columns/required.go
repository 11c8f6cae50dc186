package columns

import (
	"slices"
	"strings"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/variant"
)

// Required is a column the application expects to find in every data
// source.
type Required struct {
	Name string
	// Synonyms match case-insensitively, like Name.
	Synonyms []string
	Type     variant.Type
	Default  *variant.Value
	ReadOnly bool
}

// New declares a required column of type t.
func New(name string, t variant.Type) Required {
	return Required{Name: name, Type: t}
}

// Str declares a required string column.
func Str(name string) Required { return New(name, variant.Str) }

// U32 declares a required u32 column.
func U32(name string) Required { return New(name, variant.U32) }

// WithSynonyms returns a copy of r that also matches the given names.
func (r Required) WithSynonyms(synonyms ...string) Required {
	r.Synonyms = slices.Clone(synonyms)
	return r
}

// WithDefault returns a copy of r whose new rows start with v.
func (r Required) WithDefault(v variant.Value) Required {
	r.Default = &v
	return r
}

// Matches reports whether a source column name refers to r.
func (r Required) Matches(name string) bool {
	if strings.EqualFold(r.Name, name) {
		return true
	}
	return slices.ContainsFunc(r.Synonyms, func(s string) bool {
		return strings.EqualFold(s, name)
	})
}

// Set is an ordered collection of required columns.
type Set struct {
	columns []Required
}

// NewSet assigns ColumnUIDs in declaration order.
func NewSet(columns ...Required) *Set {
	return &Set{columns: columns}
}

// Len is the number of required columns, which is also the first adhoc
// ColumnUID.
func (s *Set) Len() int { return len(s.columns) }

// Get returns the required column with the given uid.
func (s *Set) Get(uid backend.ColumnUID) (Required, bool) {
	if int(uid) >= len(s.columns) {
		return Required{}, false
	}
	return s.columns[uid], true
}

// Columns returns the required columns in declaration order.
func (s *Set) Columns() []Required {
	return s.columns
}
