package core

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// TeleporterType says which moveables a teleporter transports.
type TeleporterType uint8

const (
	TeleportPlayer TeleporterType = iota
	TeleportObject
)

// String returns the string representation of a teleporter type.
func (t TeleporterType) String() string {
	switch t {
	case TeleportPlayer:
		return "Player"
	case TeleportObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Teleporter moves a matching moveable onto its paired teleporter. A blocked
// teleporter has something standing on it and cannot receive.
type Teleporter struct {
	symbol   rune
	typ      TeleporterType
	position Vector
	blocked  bool
	registry *TeleporterRegistry
}

// Symbol returns the pair identifier.
func (t *Teleporter) Symbol() rune { return t.symbol }

// Type returns which moveables the teleporter transports.
func (t *Teleporter) Type() TeleporterType { return t.typ }

// Position returns where the teleporter stands.
func (t *Teleporter) Position() Vector { return t.position }

// Blocked reports whether something occupies the teleporter.
func (t *Teleporter) Blocked() bool { return t.blocked }

func (*Teleporter) Kind() TileKind { return TileTeleporter }
func (*Teleporter) IsPassable(_ *Moveable, _ Direction) bool { return true }
func (*Teleporter) sealed() {}

// accepts reports whether the teleporter transports m.
func (t *Teleporter) accepts(m *Moveable) bool {
	switch t.typ {
	case TeleportPlayer:
		return m.IsPlayer()
	case TeleportObject:
		return m.IsPushable()
	default:
		return false
	}
}

// OnEnter relocates a matching moveable onto the paired teleporter and blocks
// it. When the pair is blocked, or the moveable does not match, the moveable
// stays and occupies this teleporter instead.
func (t *Teleporter) OnEnter(m *Moveable) bool {
	if t.accepts(m) && t.registry != nil {
		if target, err := t.registry.Target(t); err == nil && !target.blocked {
			target.blocked = true
			m.setPosition(target.position)
			return false
		}
	}
	t.blocked = true
	return false
}

// OnLeave always unblocks the teleporter.
func (t *Teleporter) OnLeave(_ *Moveable) bool {
	t.blocked = false
	return false
}

type teleporterPair struct {
	one   *Teleporter
	other *Teleporter
}

func (p *teleporterPair) paired() bool {
	return p.one != nil && p.other != nil
}

// TeleporterRegistry associates each pair symbol with its two teleporters.
// A registry belongs to one parsed board.
type TeleporterRegistry struct {
	pairs   map[rune]*teleporterPair
	symbols mapset.Set[rune]
}

// NewTeleporterRegistry creates an empty registry.
func NewTeleporterRegistry() *TeleporterRegistry {
	return &TeleporterRegistry{
		pairs:   make(map[rune]*teleporterPair),
		symbols: mapset.New[rune](),
	}
}

// Reset forgets every registered teleporter.
func (r *TeleporterRegistry) Reset() {
	r.pairs = make(map[rune]*teleporterPair)
	r.symbols = mapset.New[rune]()
}

// Register adds a teleporter to the slot for its symbol. A third teleporter
// for one symbol is rejected with ErrTeleporterOverflow.
func (r *TeleporterRegistry) Register(t *Teleporter) error {
	pair, ok := r.pairs[t.symbol]
	if !ok {
		r.pairs[t.symbol] = &teleporterPair{one: t}
		r.symbols.Put(t.symbol)
		t.registry = r
		return nil
	}
	if pair.paired() {
		return fmt.Errorf("symbol %q: %w", t.symbol, ErrTeleporterOverflow)
	}
	pair.other = t
	t.registry = r
	return nil
}

// AllPaired reports whether every registered symbol has exactly two members.
func (r *TeleporterRegistry) AllPaired() bool {
	return len(r.Unpaired()) == 0
}

// Unpaired returns the symbols that have only one teleporter, sorted.
func (r *TeleporterRegistry) Unpaired() []rune {
	var missing []rune
	r.symbols.Each(func(s rune) {
		if !r.pairs[s].paired() {
			missing = append(missing, s)
		}
	})
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

// Len returns the number of registered symbols.
func (r *TeleporterRegistry) Len() int {
	return r.symbols.Size()
}

// Target returns the counterpart of t. It fails with ErrUnpaired when the
// symbol has a single member or t was never registered here.
func (r *TeleporterRegistry) Target(t *Teleporter) (*Teleporter, error) {
	pair, ok := r.pairs[t.symbol]
	if !ok || !pair.paired() {
		return nil, fmt.Errorf("symbol %q: %w", t.symbol, ErrUnpaired)
	}
	switch t {
	case pair.one:
		return pair.other, nil
	case pair.other:
		return pair.one, nil
	default:
		return nil, fmt.Errorf("symbol %q: %w", t.symbol, ErrUnpaired)
	}
}
