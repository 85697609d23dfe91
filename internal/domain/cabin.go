package domain

// CabinStatus is the symbolic state of the cabin.
type CabinStatus int

const (
	Idle CabinStatus = iota
	MovingUp
	MovingDown
	DoorOpening
	DoorClosing
	WaitingForPassenger
)

func (s CabinStatus) String() string {
	switch s {
	case Idle:
		return "Idle"
	case MovingUp:
		return "MovingUp"
	case MovingDown:
		return "MovingDown"
	case DoorOpening:
		return "DoorOpening"
	case DoorClosing:
		return "DoorClosing"
	case WaitingForPassenger:
		return "WaitingForPassenger"
	default:
		return "Unknown"
	}
}

// Moving reports whether the cabin is travelling between floors.
func (s CabinStatus) Moving() bool { return s == MovingUp || s == MovingDown }

// Represents the single elevator cabin.
// Only the scheduler mutates a CabinState; everyone else sees copies.
type CabinState struct {
	Floor            int
	Status           CabinStatus
	DoorOpenFraction float64
	Occupancy        int
}

// Direction is the travel bias used to aggregate stops.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// Delta is the floor increment for one step in this direction.
func (d Direction) Delta() int {
	switch d {
	case DirectionUp:
		return 1
	case DirectionDown:
		return -1
	default:
		return 0
	}
}

// MovingStatus maps a direction to the cabin status used while travelling.
func (d Direction) MovingStatus() CabinStatus {
	switch d {
	case DirectionUp:
		return MovingUp
	case DirectionDown:
		return MovingDown
	default:
		return Idle
	}
}
