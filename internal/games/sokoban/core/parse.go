package core

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// Default board limits. Longer lines and extra rows are cut off.
const (
	DefaultMaxRows = 20
	DefaultMaxCols = 30
)

type parseConfig struct {
	maxRows int
	maxCols int
}

// ParseOption customizes ParseLevel.
type ParseOption func(*parseConfig)

// WithMaxRows sets the row limit. Non-positive values keep the default.
func WithMaxRows(n int) ParseOption {
	return func(c *parseConfig) {
		if n > 0 {
			c.maxRows = n
		}
	}
}

// WithMaxCols sets the column limit. Non-positive values keep the default.
func WithMaxCols(n int) ParseOption {
	return func(c *parseConfig) {
		if n > 0 {
			c.maxCols = n
		}
	}
}

// Board is a fully parsed level: the tile grid and everything standing on it.
type Board struct {
	Width  int
	Height int

	tiles      [][]Tile
	player     *Moveable
	pushables  map[Vector]*Moveable
	targets    []*Target
	doors      *DoorManager
	teleporter *TeleporterRegistry
}

// TileAt returns the tile at p. Cells outside the grid are walls.
func (b *Board) TileAt(p Vector) Tile {
	if p.Y < 0 || p.Y >= b.Height || p.X < 0 || p.X >= b.Width {
		return outsideBoard
	}
	return b.tiles[p.Y][p.X]
}

// Player returns the player moveable.
func (b *Board) Player() *Moveable { return b.player }

// PushableAt returns the pushable at p, if any.
func (b *Board) PushableAt(p Vector) (*Moveable, bool) {
	m, ok := b.pushables[p]
	return m, ok
}

// Pushables returns every pushable in row-major order.
func (b *Board) Pushables() []*Moveable {
	out := make([]*Moveable, 0, len(b.pushables))
	for _, m := range b.pushables {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].position, out[j].position
		if pi.Y != pj.Y {
			return pi.Y < pj.Y
		}
		return pi.X < pj.X
	})
	return out
}

// Targets returns the targets in reading order.
func (b *Board) Targets() []*Target { return b.targets }

// Doors returns the door-group manager.
func (b *Board) Doors() *DoorManager { return b.doors }

// Teleporters returns the teleporter registry.
func (b *Board) Teleporters() *TeleporterRegistry { return b.teleporter }

// AllTargetsFilled reports whether every target holds a box. A board
// without targets is trivially solved.
func (b *Board) AllTargetsFilled() bool {
	for _, t := range b.targets {
		if !t.filled {
			return false
		}
	}
	return true
}

// TargetsFilled returns how many targets hold a box.
func (b *Board) TargetsFilled() int {
	n := 0
	for _, t := range b.targets {
		if t.filled {
			n++
		}
	}
	return n
}

// String renders the board in the level text format. Open doors are drawn
// as '_'.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			sb.WriteRune(b.Rune(V(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rune returns the level-format character of cell p, moveables included.
func (b *Board) Rune(p Vector) rune {
	tile := b.TileAt(p)
	_, onTarget := tile.(*Target)
	if b.player != nil && b.player.position == p {
		if onTarget {
			return '+'
		}
		return '@'
	}
	if m, ok := b.pushables[p]; ok {
		switch {
		case m.kind == KindRock:
			return 'R'
		case onTarget:
			return '*'
		default:
			return '$'
		}
	}
	switch t := tile.(type) {
	case *Wall:
		return '#'
	case *Target:
		return '.'
	case *CrackedFloor:
		return rune('0' + t.remaining)
	case *Rutting:
		return t.allowed.Letter()
	case *Door:
		if t.open {
			return '_'
		}
		return t.symbol
	case *Button:
		return t.symbol
	case *Teleporter:
		return t.symbol
	default:
		return ' '
	}
}

// ParseLevel reads a level description and builds a fresh board. name is
// used in error messages only.
func ParseLevel(name string, r io.Reader, opts ...ParseOption) (*Board, error) {
	cfg := parseConfig{maxRows: DefaultMaxRows, maxCols: DefaultMaxCols}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &Board{
		pushables:  make(map[Vector]*Moveable),
		doors:      NewDoorManager(),
		teleporter: NewTeleporterRegistry(),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), math.MaxInt32)
	var rows [][]Tile
	for y := 0; scanner.Scan() && y < cfg.maxRows; y++ {
		line := []rune(strings.TrimRight(scanner.Text(), "\r"))
		if len(line) > cfg.maxCols {
			line = line[:cfg.maxCols]
		}
		row := make([]Tile, len(line))
		for x, ch := range line {
			tile, err := b.parseCell(name, ch, V(x, y))
			if err != nil {
				return nil, err
			}
			row[x] = tile
		}
		rows = append(rows, row)
		if len(row) > b.Width {
			b.Width = len(row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &SourceReadError{Source: name, Err: err}
	}
	b.Height = len(rows)

	b.tiles = make([][]Tile, b.Height)
	for y, row := range rows {
		full := make([]Tile, b.Width)
		copy(full, row)
		for x := range full {
			if full[x] == nil {
				full[x] = &EmptyPassage{}
			}
		}
		b.tiles[y] = full
	}

	if b.player == nil {
		return nil, &LevelFormatError{
			Source:  name,
			Code:    CodeNoPlayer,
			Message: "level has no player",
		}
	}
	if missing := b.teleporter.Unpaired(); len(missing) > 0 {
		return nil, &LevelFormatError{
			Source:  name,
			Code:    CodeUnpairedTeleporter,
			Message: fmt.Sprintf("teleporter symbols without a counterpart: %q", string(missing)),
			Err:     ErrUnpaired,
		}
	}
	b.doors.Resolve()
	return b, nil
}

// parseCell builds the tile for ch and places any moveable it carries.
// Unknown characters yield nil and become passages later.
func (b *Board) parseCell(name string, ch rune, p Vector) (Tile, error) {
	switch ch {
	case '#':
		return &Wall{}, nil
	case ' ':
		return &EmptyPassage{}, nil
	case '.':
		t := &Target{}
		b.targets = append(b.targets, t)
		return t, nil
	case '*':
		t := &Target{filled: true}
		b.targets = append(b.targets, t)
		b.pushables[p] = newMoveable(KindBox, p)
		return t, nil
	case '$':
		b.pushables[p] = newMoveable(KindBox, p)
		return &EmptyPassage{}, nil
	case 'R':
		b.pushables[p] = newMoveable(KindRock, p)
		return &EmptyPassage{}, nil
	case '@':
		b.player = newMoveable(KindPlayer, p)
		return &EmptyPassage{}, nil
	case '+':
		t := &Target{}
		b.targets = append(b.targets, t)
		b.player = newMoveable(KindPlayer, p)
		return t, nil
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return &CrackedFloor{remaining: int(ch - '0')}, nil
	case 'N', 'O', 'S', 'W':
		dir, _ := ParseDirection(ch)
		return &Rutting{allowed: dir}, nil
	case 'A', 'B', 'C':
		d := &Door{symbol: ch, position: p}
		b.doors.AddDoor(ch, d, GroupOr)
		return d, nil
	case 'a', 'b', 'c':
		btn := &Button{symbol: ch}
		b.doors.AddButton(ch, btn, GroupOr)
		return btn, nil
	case 'D', 'E', 'F':
		d := &Door{symbol: ch, position: p}
		b.doors.AddDoor(ch, d, GroupParity)
		return d, nil
	case 'd', 'e', 'f':
		btn := &Button{symbol: ch}
		b.doors.AddButton(ch, btn, GroupParity)
		return btn, nil
	case 'T', 'U', 'V':
		return b.addTeleporter(name, ch, TeleportPlayer, p)
	case 'X', 'Y', 'Z':
		return b.addTeleporter(name, ch, TeleportObject, p)
	default:
		return nil, nil
	}
}

func (b *Board) addTeleporter(name string, ch rune, typ TeleporterType, p Vector) (Tile, error) {
	t := &Teleporter{symbol: ch, typ: typ, position: p}
	if err := b.teleporter.Register(t); err != nil {
		return nil, &LevelFormatError{
			Source:  name,
			Code:    CodeTeleporterOverflow,
			Message: fmt.Sprintf("third teleporter %q at %v", ch, p),
			Err:     err,
		}
	}
	return t, nil
}
