package core

import (
	"errors"
	"testing"
)

func TestRegistryPairing(t *testing.T) {
	r := NewTeleporterRegistry()
	t1 := &Teleporter{symbol: 'T', position: V(1, 1)}
	t2 := &Teleporter{symbol: 'T', position: V(5, 1)}

	if err := r.Register(t1); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if r.AllPaired() {
		t.Error("a single teleporter should not count as paired")
	}
	if _, err := r.Target(t1); !errors.Is(err, ErrUnpaired) {
		t.Errorf("expected ErrUnpaired, got %v", err)
	}

	if err := r.Register(t2); err != nil {
		t.Fatalf("second registration: %v", err)
	}
	if !r.AllPaired() {
		t.Error("expected all paired")
	}
	if got, err := r.Target(t1); err != nil || got != t2 {
		t.Errorf("Target(t1): expected t2, got %v (%v)", got, err)
	}
	if got, err := r.Target(t2); err != nil || got != t1 {
		t.Errorf("Target(t2): expected t1, got %v (%v)", got, err)
	}

	err := r.Register(&Teleporter{symbol: 'T', position: V(7, 1)})
	if !errors.Is(err, ErrTeleporterOverflow) {
		t.Errorf("expected ErrTeleporterOverflow, got %v", err)
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("expected empty registry after Reset, got %d", r.Len())
	}
}

func TestRegistryUnpairedSorted(t *testing.T) {
	r := NewTeleporterRegistry()
	for _, s := range []rune{'Z', 'T', 'X', 'X'} {
		if err := r.Register(&Teleporter{symbol: s}); err != nil {
			t.Fatalf("register %q: %v", s, err)
		}
	}
	got := string(r.Unpaired())
	if got != "TZ" {
		t.Errorf("expected unpaired TZ, got %q", got)
	}
}

func TestTeleporterOccupancy(t *testing.T) {
	r := NewTeleporterRegistry()
	a := &Teleporter{symbol: 'X', typ: TeleportObject, position: V(1, 0)}
	b := &Teleporter{symbol: 'X', typ: TeleportObject, position: V(4, 0)}
	_ = r.Register(a)
	_ = r.Register(b)

	box := newMoveable(KindBox, a.position)
	a.OnEnter(box)
	if box.Position() != b.position || !b.Blocked() || a.Blocked() {
		t.Fatalf("box should land on the pair: pos=%v a=%v b=%v", box.Position(), a.Blocked(), b.Blocked())
	}

	rock := newMoveable(KindRock, a.position)
	a.OnEnter(rock)
	if rock.Position() != a.position || !a.Blocked() {
		t.Fatalf("pair occupied, rock should stay: pos=%v a=%v", rock.Position(), a.Blocked())
	}

	player := newMoveable(KindPlayer, b.position)
	b.OnLeave(box)
	if b.Blocked() {
		t.Error("leaving should unblock")
	}
	b.OnEnter(player)
	if player.Position() != b.position || !b.Blocked() {
		t.Error("object teleporter should keep the player and count as occupied")
	}
}
