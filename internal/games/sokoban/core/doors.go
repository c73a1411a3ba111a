package core

import (
	"fmt"
	"unicode"

	"github.com/zyedidia/generic/mapset"
)

// GroupType selects the activation rule of a button/door group.
type GroupType uint8

const (
	// GroupOr opens its doors while at least one button is pressed.
	GroupOr GroupType = iota
	// GroupParity opens its doors while an even number (two or more) of
	// buttons is pressed.
	GroupParity
)

// String returns the string representation of a group type.
func (t GroupType) String() string {
	switch t {
	case GroupOr:
		return "OR"
	case GroupParity:
		return "PARITY"
	default:
		return "Unknown"
	}
}

// Group is a named set of doors and the buttons that operate them.
type Group struct {
	typ     GroupType
	doors   []*Door
	members mapset.Set[*Door]
	buttons []*Button
}

func newGroup(typ GroupType) *Group {
	return &Group{typ: typ, members: mapset.New[*Door]()}
}

// Type returns the activation rule of the group.
func (g *Group) Type() GroupType { return g.typ }

// Doors returns the doors of the group in declaration order.
func (g *Group) Doors() []*Door { return g.doors }

// Buttons returns the buttons of the group in declaration order.
func (g *Group) Buttons() []*Button { return g.buttons }

// ContainsDoor reports whether d belongs to the group.
func (g *Group) ContainsDoor(d *Door) bool {
	return g.members.Has(d)
}

// PressedCount returns how many buttons of the group are pressed.
func (g *Group) PressedCount() int {
	n := 0
	for _, b := range g.buttons {
		if b.pressed {
			n++
		}
	}
	return n
}

// IsDoorOpen applies the group rule to d. Asking about a door that is not a
// member is a programming error and panics.
func (g *Group) IsDoorOpen(d *Door) bool {
	if !g.ContainsDoor(d) {
		panic(fmt.Sprintf("core: door at %v does not belong to this %s group", d.position, g.typ))
	}
	pressed := g.PressedCount()
	switch g.typ {
	case GroupOr:
		return pressed >= 1
	case GroupParity:
		return pressed >= 2 && pressed%2 == 0
	default:
		return false
	}
}

func (g *Group) addDoor(d *Door) {
	if g.members.Has(d) {
		return
	}
	g.members.Put(d)
	g.doors = append(g.doors, d)
}

func (g *Group) addButton(b *Button) {
	g.buttons = append(g.buttons, b)
}

// DoorManager owns every button/door group of a board.
type DoorManager struct {
	groups map[rune]*Group
	order  []rune
}

// NewDoorManager creates a manager with no groups.
func NewDoorManager() *DoorManager {
	return &DoorManager{groups: make(map[rune]*Group)}
}

// groupFor returns the group for the case-folded symbol, creating it with typ
// on first sight. A group of a different type yields nil.
func (m *DoorManager) groupFor(symbol rune, typ GroupType) *Group {
	key := unicode.ToLower(symbol)
	g, ok := m.groups[key]
	if !ok {
		g = newGroup(typ)
		m.groups[key] = g
		m.order = append(m.order, key)
	}
	if g.typ != typ {
		return nil
	}
	return g
}

// AddDoor registers d with the group for symbol. A declaration whose type
// disagrees with the existing group is ignored.
func (m *DoorManager) AddDoor(symbol rune, d *Door, typ GroupType) {
	if g := m.groupFor(symbol, typ); g != nil {
		g.addDoor(d)
	}
}

// AddButton registers b with the group for symbol. A declaration whose type
// disagrees with the existing group is ignored.
func (m *DoorManager) AddButton(symbol rune, b *Button, typ GroupType) {
	if g := m.groupFor(symbol, typ); g != nil {
		g.addButton(b)
	}
}

// Group returns the group for symbol, if any.
func (m *DoorManager) Group(symbol rune) (*Group, bool) {
	g, ok := m.groups[unicode.ToLower(symbol)]
	return g, ok
}

// Len returns the number of groups.
func (m *DoorManager) Len() int {
	return len(m.groups)
}

// IsDoorOpen returns true if any group containing d opens it.
func (m *DoorManager) IsDoorOpen(d *Door) bool {
	for _, key := range m.order {
		g := m.groups[key]
		if g.ContainsDoor(d) && g.IsDoorOpen(d) {
			return true
		}
	}
	return false
}

// Resolve recomputes every door and returns the positions of the doors whose
// state flipped, in group declaration order.
func (m *DoorManager) Resolve() []Vector {
	var changed []Vector
	seen := mapset.New[*Door]()
	for _, key := range m.order {
		for _, d := range m.groups[key].doors {
			if seen.Has(d) {
				continue
			}
			seen.Put(d)
			if d.SetOpen(m.IsDoorOpen(d)) {
				changed = append(changed, d.position)
			}
		}
	}
	return changed
}

// Clear discards all groups and their members.
func (m *DoorManager) Clear() {
	m.groups = make(map[rune]*Group)
	m.order = nil
}
