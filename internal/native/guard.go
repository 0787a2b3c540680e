package native

import "fmt"

// Guard is a scoped trace frame. Leave is idempotent, so a deferred Leave
// balances the trace on every exit path even after an explicit Leave.
//
//	g := native.Enter("vnorm_array")
//	defer g.Leave()
type Guard struct {
	name string
	done bool
}

// Enter pushes name onto the trace and returns its guard.
func Enter(name string) *Guard {
	Chkin(name)
	return &Guard{name: name}
}

// Leave pops the frame pushed by Enter. Later calls do nothing.
func (g *Guard) Leave() {
	if g.done {
		return
	}
	g.done = true
	Chkout(g.name)
}

// Name returns the frame name.
func (g *Guard) Name() string {
	return g.name
}

// Fail signals from inside the guarded frame and returns ErrFailed.
func (g *Guard) Fail(short, format string, args ...any) error {
	Setmsg(fmt.Sprintf(format, args...))
	Sigerr(short)
	return ErrFailed
}
