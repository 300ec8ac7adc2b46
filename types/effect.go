package types

// Effect is the row tag carried by every function type: Pure or IO.
// Pure <= IO: a Pure body may call a Pure callee; an IO body may call
// either. The reverse (Pure calling IO) is rejected during inference.
type Effect int

const (
	Pure Effect = iota
	IO
)

func (e Effect) String() string {
	if e == IO {
		return "IO"
	}
	return "Pure"
}

// LE reports whether callee effect e is permitted inside a body of
// declared effect caller (e <= caller).
func (e Effect) LE(caller Effect) bool {
	if e == Pure {
		return true
	}
	return caller == IO
}

// Join returns the least upper bound of two effects.
func Join(a, b Effect) Effect {
	if a == IO || b == IO {
		return IO
	}
	return Pure
}
