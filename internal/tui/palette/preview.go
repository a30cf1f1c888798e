package palette

// Preview tracks one togglable preference across a palette session. The live
// value lives elsewhere (the theme stores); Preview only remembers what to
// restore if the session ends without a commit.
//
// The protocol per session: Open snapshots the current value and clears the
// commit flag; previewed changes are applied live by the caller; Commit marks
// the preference as kept; Close reports whether the caller must revert to the
// snapshot. Open always re-snapshots, so rapid reopen never leaks a stale
// original.
type Preview[T comparable] struct {
	original  T
	committed bool
	open      bool
}

// Open starts a session, snapshotting the current live value.
func (p *Preview[T]) Open(current T) {
	p.original = current
	p.committed = false
	p.open = true
}

// Commit marks the previewed value as kept after close.
func (p *Preview[T]) Commit() {
	if p.open {
		p.committed = true
	}
}

// Committed reports whether the preference was committed this session.
func (p *Preview[T]) Committed() bool {
	return p.committed
}

// Original returns the value snapshotted at Open.
func (p *Preview[T]) Original() T {
	return p.original
}

// Close ends the session. It returns the snapshot and true when the caller
// must revert the live value: the session was never committed and the live
// value drifted from the snapshot.
func (p *Preview[T]) Close(live T) (T, bool) {
	defer func() { p.open = false }()

	if !p.committed && live != p.original {
		return p.original, true
	}
	return live, false
}
