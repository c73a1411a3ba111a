package core

// Direction is one of the four cardinal directions, or DirNone.
type Direction uint8

const (
	DirNone Direction = iota
	DirNorth
	DirEast
	DirSouth
	DirWest
)

// Directions lists the four cardinal directions in clockwise order.
func Directions() []Direction {
	return []Direction{DirNorth, DirEast, DirSouth, DirWest}
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirNorth:
		return "North"
	case DirEast:
		return "East"
	case DirSouth:
		return "South"
	case DirWest:
		return "West"
	default:
		return "None"
	}
}

// Vector returns the unit displacement of the direction. North decreases Y.
func (d Direction) Vector() Vector {
	switch d {
	case DirNorth:
		return Vector{X: 0, Y: -1}
	case DirEast:
		return Vector{X: 1, Y: 0}
	case DirSouth:
		return Vector{X: 0, Y: 1}
	case DirWest:
		return Vector{X: -1, Y: 0}
	default:
		return Vector{}
	}
}

// Inverse returns the opposite direction. DirNone inverts to itself.
func (d Direction) Inverse() Direction {
	return DirectionOf(d.Vector().Negate())
}

// Letter returns the level-file letter of a direction (N, O, S, W).
// East is written 'O' (Ost) so that 'E' stays free for parity doors.
func (d Direction) Letter() rune {
	switch d {
	case DirNorth:
		return 'N'
	case DirEast:
		return 'O'
	case DirSouth:
		return 'S'
	case DirWest:
		return 'W'
	default:
		return ' '
	}
}

// DirectionOf returns the direction whose unit vector matches the normalized
// displacement, or DirNone for zero and diagonal displacements.
func DirectionOf(v Vector) Direction {
	n := v.Normalize()
	for _, d := range Directions() {
		if d.Vector() == n {
			return d
		}
	}
	return DirNone
}

// DirectionBetween returns the direction a moveable travels when going from
// one position to another.
func DirectionBetween(from, to Vector) Direction {
	return DirectionOf(to.Sub(from))
}

// ParseDirection maps a level-file letter to a direction.
func ParseDirection(r rune) (Direction, bool) {
	for _, d := range Directions() {
		if d.Letter() == r {
			return d, true
		}
	}
	return DirNone, false
}
