package red

// Binding is a bind that is undone on request. It is returned by Bind
// methods already applied, so the common form is
//
//	defer vao.Bind().Unbind()
//
// GL binding slots are single-valued with no save/restore: Unbind clears the
// slot rather than restoring the previous occupant.
type Binding struct {
	unbind func()
	done   bool
}

func newBinding(unbind func()) *Binding {
	return &Binding{unbind: unbind}
}

// Unbind clears the binding slot. Calls after the first are no-ops.
func (b *Binding) Unbind() {
	if b == nil || b.done {
		return
	}
	b.done = true
	b.unbind()
}
