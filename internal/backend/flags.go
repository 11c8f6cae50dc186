package backend

// FlagBuffer holds one-shot flags in two buffers: pending (written during
// the current frame) and archived (what the previous frame produced).
type FlagBuffer struct {
	pending  OneShotFlags
	archived OneShotFlags
}

// NewFlagBuffer returns a buffer whose pending flags start as initial.
func NewFlagBuffer(initial OneShotFlags) *FlagBuffer {
	return &FlagBuffer{pending: initial}
}

// Pending returns the flags set since the last Archive.
func (b *FlagBuffer) Pending() OneShotFlags {
	return b.pending
}

// Archived returns the flags captured by the last Archive.
func (b *FlagBuffer) Archived() OneShotFlags {
	return b.archived
}

// Mutate applies fn to the pending flags.
func (b *FlagBuffer) Mutate(fn func(*OneShotFlags)) {
	fn(&b.pending)
}

// Archive moves pending flags to the archived buffer and resets pending.
func (b *FlagBuffer) Archive() {
	b.archived = b.pending
	b.pending = OneShotFlags{}
}
