package testutil

import (
	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/variant"
	"github.com/vk/tabgrid/internal/variantstore"
)

// FruitStore returns a store with columns Name (str), Count (u32, default 0)
// and ID (read-only u32) holding one row per name. Counts are 1, 2, 3...
func FruitStore(names ...string) *variantstore.Store {
	zero := variant.U32Val(0)
	s := variantstore.New(
		variantstore.ColumnSpec{Name: "Name", Type: variant.Str, Required: true},
		variantstore.ColumnSpec{Name: "Count", Type: variant.U32, Default: &zero, Required: true},
		variantstore.ColumnSpec{Name: "ID", Type: variant.U32, ReadOnly: true},
	)
	for i, name := range names {
		s.InsertRow(map[backend.ColumnUID]variant.Value{
			0: variant.StrVal(name),
			1: variant.U32Val(uint32(i + 1)),
			2: variant.U32Val(uint32(100 + i)),
		})
	}
	return s
}
