package flight

// Status is the flight phase derived each tick from velocity, stall and
// contact state.
type Status int

const (
	Grounded Status = iota
	Flying
	Stalled
	Tumbling
)

func (s Status) String() string {
	switch s {
	case Flying:
		return "flying"
	case Stalled:
		return "stalled"
	case Tumbling:
		return "tumbling"
	default:
		return "grounded"
	}
}

// Airborne reports whether aerodynamic forces apply in this status.
func (s Status) Airborne() bool { return s != Grounded }
