package grid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vk/tabgrid/internal/backend"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/variant"
)

// MutationKind is the kind of a deferred write.
type MutationKind uint8

const (
	MutSetCell MutationKind = iota
	MutCreateRow
	MutSkipRow
	MutSkipColumn
	MutClear
)

func (k MutationKind) String() string {
	switch k {
	case MutSetCell:
		return "set_cell"
	case MutCreateRow:
		return "create_row"
	case MutSkipRow:
		return "skip_row"
	case MutSkipColumn:
		return "skip_column"
	default:
		return "clear"
	}
}

// Mutation is a write collected during event handling and applied after the
// frame was drawn. Coordinates are UIDs so the write lands on the same cell
// even if the visual order changed in between.
type Mutation struct {
	Kind  MutationKind
	Coord backend.CellCoord
	Value variant.Value
	Skip  bool
}

// apply performs muts in order and records what was written into res.
func (g *Grid) apply(ctx context.Context, be backend.Backend, muts []Mutation, res *FrameResult) {
	logger := ctxlog.FromContext(ctx)
	for _, m := range muts {
		switch m.Kind {
		case MutSetCell:
			err := be.Set(m.Coord, m.Value)
			switch {
			case err == nil:
				res.Written = append(res.Written, m.Coord)
			case errors.Is(err, backend.ErrStaleCoord):
				logger.Debug("Dropped write to a cell that no longer exists.", "cell", m.Coord)
				continue
			default:
				g.notify(ctx, res, slog.LevelWarn, fmt.Sprintf("Could not write cell: %v", err))
				continue
			}
		case MutCreateRow:
			uid, ok := be.CreateRow(nil)
			if !ok {
				g.notify(ctx, res, slog.LevelWarn, "This table does not accept new rows")
				continue
			}
			logger.Debug("Appended row.", "row", uid)
		case MutSkipRow:
			be.SkipRow(m.Coord.Row, m.Skip)
		case MutSkipColumn:
			be.SkipColumn(m.Coord.Col, m.Skip)
		case MutClear:
			be.Clear()
			clear(g.meta)
			clear(g.rowHeights)
			g.sel.Reset()
			logger.Info("Cleared table.")
		}
		res.Mutations = append(res.Mutations, m)
	}
}
