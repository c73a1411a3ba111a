package core

// TileKind identifies the variant of a board tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TilePassage
	TileTarget
	TileCrackedFloor
	TileRutting
	TileDoor
	TileButton
	TileTeleporter
)

// String returns the string representation of a tile kind.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "Wall"
	case TilePassage:
		return "Passage"
	case TileTarget:
		return "Target"
	case TileCrackedFloor:
		return "CrackedFloor"
	case TileRutting:
		return "Rutting"
	case TileDoor:
		return "Door"
	case TileButton:
		return "Button"
	case TileTeleporter:
		return "Teleporter"
	default:
		return "Unknown"
	}
}

// Tile is a single board cell. The set of variants is closed: only types in
// this package implement it. Tiles never own moveables; OnEnter and OnLeave
// report whether the tile's own state changed.
type Tile interface {
	Kind() TileKind
	IsPassable(m *Moveable, dir Direction) bool
	OnEnter(m *Moveable) bool
	OnLeave(m *Moveable) bool

	sealed()
}

// Wall is never passable.
type Wall struct{}

func (*Wall) Kind() TileKind { return TileWall }
func (*Wall) IsPassable(_ *Moveable, _ Direction) bool { return false }
func (*Wall) OnEnter(_ *Moveable) bool { return false }
func (*Wall) OnLeave(_ *Moveable) bool { return false }
func (*Wall) sealed() {}

// EmptyPassage is plain floor.
type EmptyPassage struct{}

func (*EmptyPassage) Kind() TileKind { return TilePassage }
func (*EmptyPassage) IsPassable(_ *Moveable, _ Direction) bool { return true }
func (*EmptyPassage) OnEnter(_ *Moveable) bool { return false }
func (*EmptyPassage) OnLeave(_ *Moveable) bool { return false }
func (*EmptyPassage) sealed() {}

// Target must hold a box for the level to be complete.
type Target struct {
	filled bool
}

// Filled reports whether a box stands on the target.
func (t *Target) Filled() bool { return t.filled }

func (*Target) Kind() TileKind { return TileTarget }
func (*Target) IsPassable(_ *Moveable, _ Direction) bool { return true }
func (*Target) sealed() {}

// OnEnter fills the target when a box arrives. Rocks do not count.
func (t *Target) OnEnter(m *Moveable) bool {
	if m.Kind() != KindBox {
		return false
	}
	t.filled = true
	return true
}

// OnLeave empties the target when a box leaves.
func (t *Target) OnLeave(m *Moveable) bool {
	if m.Kind() != KindBox {
		return false
	}
	t.filled = false
	return true
}

// CrackedFloor carries a limited number of pushable crossings.
type CrackedFloor struct {
	remaining int
}

// Remaining returns how many more pushables the floor will carry.
func (c *CrackedFloor) Remaining() int { return c.remaining }

func (*CrackedFloor) Kind() TileKind { return TileCrackedFloor }
func (*CrackedFloor) OnLeave(_ *Moveable) bool { return false }
func (*CrackedFloor) sealed() {}

// IsPassable always lets the player through; pushables need remaining > 0.
func (c *CrackedFloor) IsPassable(m *Moveable, _ Direction) bool {
	if m.IsPushable() {
		return c.remaining > 0
	}
	return true
}

// OnEnter consumes one crossing when a pushable moves onto the floor.
func (c *CrackedFloor) OnEnter(m *Moveable) bool {
	if !m.IsPushable() || c.remaining == 0 {
		return false
	}
	c.remaining--
	return true
}

// Rutting lets pushables enter only from one side. The player ignores ruts.
type Rutting struct {
	allowed Direction
}

// Allowed returns the side pushables must come from: a rut marked North is
// entered by pushing southwards.
func (r *Rutting) Allowed() Direction { return r.allowed }

func (*Rutting) Kind() TileKind { return TileRutting }
func (*Rutting) OnEnter(_ *Moveable) bool { return false }
func (*Rutting) OnLeave(_ *Moveable) bool { return false }
func (*Rutting) sealed() {}

// IsPassable admits a pushable when the inverse of its movement is the
// allowed side.
func (r *Rutting) IsPassable(m *Moveable, dir Direction) bool {
	if m.IsPushable() {
		return dir.Inverse() == r.allowed
	}
	return true
}

// Door is passable only while open. Its state is owned by the door groups.
type Door struct {
	symbol   rune
	position Vector
	open     bool
}

// Symbol returns the level-file letter the door was declared with.
func (d *Door) Symbol() rune { return d.symbol }

// Position returns where the door stands.
func (d *Door) Position() Vector { return d.position }

// Open reports whether the door is open.
func (d *Door) Open() bool { return d.open }

// SetOpen changes the door state and reports whether it flipped.
func (d *Door) SetOpen(open bool) bool {
	was := d.open
	d.open = open
	return was != open
}

func (*Door) Kind() TileKind { return TileDoor }
func (*Door) OnEnter(_ *Moveable) bool { return false }
func (*Door) OnLeave(_ *Moveable) bool { return false }
func (*Door) sealed() {}

// IsPassable reports the door state for every moveable.
func (d *Door) IsPassable(_ *Moveable, _ Direction) bool { return d.open }

// Button is pressed while a pushable stands on it.
type Button struct {
	symbol  rune
	pressed bool
}

// Symbol returns the level-file letter the button was declared with.
func (b *Button) Symbol() rune { return b.symbol }

// Pressed reports whether a pushable holds the button down.
func (b *Button) Pressed() bool { return b.pressed }

func (*Button) Kind() TileKind { return TileButton }
func (*Button) IsPassable(_ *Moveable, _ Direction) bool { return true }
func (*Button) sealed() {}

// OnEnter presses the button for boxes and rocks; the player is too light.
func (b *Button) OnEnter(m *Moveable) bool {
	if !m.IsPushable() {
		return false
	}
	b.pressed = true
	return true
}

// OnLeave releases the button when a pushable leaves.
func (b *Button) OnLeave(m *Moveable) bool {
	if !m.IsPushable() {
		return false
	}
	b.pressed = false
	return true
}

var outsideBoard Tile = &Wall{}
