package opengl

// unwind collects cleanup steps during a multi-step GL setup.
type unwind []func()

func (u *unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

// Unwind runs the cleanups in reverse order and empties the list.
func (u *unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = (*u)[:0]
}
