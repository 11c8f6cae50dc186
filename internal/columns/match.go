package columns

import (
	"fmt"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/variant"
	"github.com/vk/tabgrid/internal/variantstore"
)

// Assignment ties a required column to the source column feeding it.
// Source is -1 when nothing in the source matched.
type Assignment struct {
	UID      backend.ColumnUID
	Required Required
	Source   int
}

// AdhocColumn is a source column that no requirement claimed.
type AdhocColumn struct {
	UID    backend.ColumnUID
	Name   string
	Source int
}

// DoubleMatch records a source column that matched a requirement after the
// requirement or the source column had already been paired. The first pair
// wins.
type DoubleMatch struct {
	Required string
	Header   string
	Source   int
}

func (d DoubleMatch) String() string {
	return fmt.Sprintf("double match for column %s (source column %d %q)", d.Required, d.Source, d.Header)
}

// Mapping is the result of matching a Set against source headers.
type Mapping struct {
	Assignments    []Assignment
	Adhoc          []AdhocColumn
	SourceToColumn map[int]backend.ColumnUID
	Warnings       []DoubleMatch
}

// Match pairs every required column with at most one header. The result
// only depends on the inputs.
func (s *Set) Match(headers []string) Mapping {
	m := Mapping{SourceToColumn: make(map[int]backend.ColumnUID, len(headers))}
	claimed := make(map[int]bool, len(headers))

	for i, req := range s.columns {
		uid := backend.ColumnUID(i)
		a := Assignment{UID: uid, Required: req, Source: -1}
		for src, h := range headers {
			if !req.Matches(h) {
				continue
			}
			if a.Source >= 0 || claimed[src] {
				m.Warnings = append(m.Warnings, DoubleMatch{Required: req.Name, Header: h, Source: src})
				continue
			}
			a.Source = src
			claimed[src] = true
			m.SourceToColumn[src] = uid
		}
		m.Assignments = append(m.Assignments, a)
	}

	next := backend.ColumnUID(len(s.columns))
	for src, h := range headers {
		if claimed[src] {
			continue
		}
		m.Adhoc = append(m.Adhoc, AdhocColumn{UID: next, Name: h, Source: src})
		m.SourceToColumn[src] = next
		next++
	}
	return m
}

// Declare installs the required columns into store.
func (s *Set) Declare(store *variantstore.Store) {
	for i, req := range s.columns {
		store.InsertColumn(backend.ColumnUID(i), variantstore.ColumnSpec{
			Name:     req.Name,
			Synonyms: req.Synonyms,
			Type:     req.Type,
			Default:  req.Default,
			Kind:     backend.KindStatic,
			Required: true,
			ReadOnly: req.ReadOnly,
		})
	}
}

// Apply installs the adhoc columns of m into store. Required columns are
// installed by Set.Declare.
func (m Mapping) Apply(store *variantstore.Store) {
	for _, a := range m.Adhoc {
		store.InsertColumn(a.UID, variantstore.ColumnSpec{
			Name: a.Name,
			Type: variant.Str,
			Kind: backend.KindAdhoc,
		})
	}
}

// TypeOf returns the type values of column uid are converted to. Adhoc
// columns hold strings.
func (s *Set) TypeOf(uid backend.ColumnUID) variant.Type {
	if req, ok := s.Get(uid); ok {
		return req.Type
	}
	return variant.Str
}
