package paste

import (
	"fmt"

	"github.com/vk/tabgrid/internal/selection"
)

// Options are the answers to a Prompt. They are independent of each other.
type Options struct {
	// CreateRows appends rows when the block is taller than the selection.
	CreateRows bool
	// FillWithSame repeats the block to cover a larger selection.
	FillWithSame bool
	// CreateAdhocCols appends columns when the block is wider than the
	// selection. It needs a backend.ColumnCreator.
	CreateAdhocCols bool
}

// Job is a block ready to be written at a selection.
type Job struct {
	Block     Block
	Selection selection.Range
	Options   Options
}

// Prompt describes a block that does not fit its selection. The Can fields
// say which Options make sense for this shape.
type Prompt struct {
	BlockHeight, BlockWidth int
	SelHeight, SelWidth     int
	HasHoles                bool
	CanCreateRows           bool
	CanFill                 bool
	CanCreateCols           bool
}

func (p Prompt) String() string {
	holes := ""
	if p.HasHoles {
		holes = " (with holes)"
	}
	return fmt.Sprintf("You are about to paste %dx%d block%s into %dx%d selection",
		p.BlockHeight, p.BlockWidth, holes, p.SelHeight, p.SelWidth)
}

// ResultKind is the outcome of Engine.Begin.
type ResultKind uint8

const (
	// ResultNoop: nothing to paste.
	ResultNoop ResultKind = iota
	// ResultRefused: the paste cannot happen; Warning says why.
	ResultRefused
	// ResultApply: the block fits the selection, apply Job now.
	ResultApply
	// ResultNeedsDecision: show Prompt and call Resolve.
	ResultNeedsDecision
)

// Result is returned by Engine.Begin.
type Result struct {
	Kind    ResultKind
	Job     Job
	Prompt  Prompt
	Warning string
}

// Capabilities of the target backend.
type Capabilities struct {
	ReadOnly      bool
	CanCreateCols bool
}

// Engine holds at most one block waiting for a decision.
type Engine struct {
	pending *Job
	prompt  Prompt
}

// Pending returns the block waiting for a decision.
func (e *Engine) Pending() (Prompt, bool) {
	return e.prompt, e.pending != nil
}

// Begin starts a paste of text into sel. A new paste replaces one that was
// still waiting for a decision.
func (e *Engine) Begin(text string, sel selection.Range, hasSel bool, caps Capabilities) Result {
	block := ParseBlock(text)
	if block.IsEmpty() {
		return Result{Kind: ResultNoop}
	}
	e.pending = nil
	if caps.ReadOnly {
		return Result{Kind: ResultRefused, Warning: "Refusing to paste into a read-only table"}
	}
	if !hasSel {
		return Result{Kind: ResultRefused, Warning: "Refusing to paste without selection"}
	}

	job := Job{Block: block, Selection: sel}
	if block.Height == sel.Height() && block.Width == sel.Width() && !block.HasHoles {
		return Result{Kind: ResultApply, Job: job}
	}

	e.prompt = Prompt{
		BlockHeight:   block.Height,
		BlockWidth:    block.Width,
		SelHeight:     sel.Height(),
		SelWidth:      sel.Width(),
		HasHoles:      block.HasHoles,
		CanCreateRows: block.Height > sel.Height(),
		CanFill:       sel.Height() > block.Height || sel.Width() > block.Width,
		CanCreateCols: caps.CanCreateCols && block.Width > sel.Width(),
	}
	e.pending = &job
	return Result{Kind: ResultNeedsDecision, Prompt: e.prompt, Job: job}
}

// Resolve answers the pending prompt. The pending block is cleared whatever
// the answer; ok is false when there is nothing to apply.
func (e *Engine) Resolve(confirm bool, opts Options) (job Job, ok bool) {
	if e.pending == nil {
		return Job{}, false
	}
	job = *e.pending
	e.pending = nil
	if !confirm {
		return Job{}, false
	}
	job.Options = Options{
		CreateRows:      opts.CreateRows && e.prompt.CanCreateRows,
		FillWithSame:    opts.FillWithSame,
		CreateAdhocCols: opts.CreateAdhocCols && e.prompt.CanCreateCols,
	}
	return job, true
}
