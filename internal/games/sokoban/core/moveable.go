package core

// MoveableKind tags the closed set of things that move on the board.
type MoveableKind uint8

const (
	KindPlayer MoveableKind = iota
	KindBox
	KindRock
)

// String returns the string representation of a moveable kind.
func (k MoveableKind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindBox:
		return "Box"
	case KindRock:
		return "Rock"
	default:
		return "Unknown"
	}
}

// Moveable is the player or a pushable object. The initial position is fixed
// at load time.
type Moveable struct {
	kind     MoveableKind
	position Vector
	initial  Vector
}

func newMoveable(kind MoveableKind, pos Vector) *Moveable {
	return &Moveable{kind: kind, position: pos, initial: pos}
}

// Kind returns the variant of the moveable.
func (m *Moveable) Kind() MoveableKind {
	return m.kind
}

// Position returns the current position.
func (m *Moveable) Position() Vector {
	return m.position
}

// InitialPosition returns the position the moveable was loaded at.
func (m *Moveable) InitialPosition() Vector {
	return m.initial
}

// IsPushable reports whether the player can push this moveable.
func (m *Moveable) IsPushable() bool {
	switch m.kind {
	case KindBox, KindRock:
		return true
	default:
		return false
	}
}

// IsPlayer reports whether the moveable is the player.
func (m *Moveable) IsPlayer() bool {
	return m.kind == KindPlayer
}

func (m *Moveable) setPosition(pos Vector) {
	m.position = pos
}

// MoveEvent records the latest displacement of a pushable.
type MoveEvent struct {
	Old      Vector
	New      Vector
	Moveable *Moveable
}
