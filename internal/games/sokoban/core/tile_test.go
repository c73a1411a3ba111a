package core

import "testing"

func TestTilePassability(t *testing.T) {
	player := newMoveable(KindPlayer, V(0, 0))
	box := newMoveable(KindBox, V(0, 0))
	rock := newMoveable(KindRock, V(0, 0))

	tests := []struct {
		name string
		tile Tile
		m    *Moveable
		dir  Direction
		want bool
	}{
		{"wall blocks player", &Wall{}, player, DirEast, false},
		{"wall blocks box", &Wall{}, box, DirEast, false},
		{"passage", &EmptyPassage{}, box, DirEast, true},
		{"target", &Target{}, rock, DirEast, true},
		{"cracked floor carries box", &CrackedFloor{remaining: 1}, box, DirEast, true},
		{"broken floor stops box", &CrackedFloor{remaining: 0}, box, DirEast, false},
		{"broken floor stops rock", &CrackedFloor{remaining: 0}, rock, DirEast, false},
		{"broken floor carries player", &CrackedFloor{remaining: 0}, player, DirEast, true},
		{"rut entered from its side", &Rutting{allowed: DirWest}, box, DirEast, true},
		{"rut entered from the other side", &Rutting{allowed: DirWest}, box, DirWest, false},
		{"rut entered sideways", &Rutting{allowed: DirWest}, box, DirNorth, false},
		{"rut ignores player", &Rutting{allowed: DirWest}, player, DirNorth, true},
		{"closed door", &Door{}, player, DirEast, false},
		{"open door", &Door{open: true}, box, DirEast, true},
		{"button", &Button{}, box, DirEast, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tile.IsPassable(tt.m, tt.dir); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTargetFilledByBoxOnly(t *testing.T) {
	target := &Target{}

	if target.OnEnter(newMoveable(KindRock, V(0, 0))) || target.Filled() {
		t.Error("rock should not fill a target")
	}
	if target.OnEnter(newMoveable(KindPlayer, V(0, 0))) || target.Filled() {
		t.Error("player should not fill a target")
	}

	box := newMoveable(KindBox, V(0, 0))
	if !target.OnEnter(box) || !target.Filled() {
		t.Fatal("box should fill the target")
	}
	if !target.OnLeave(box) || target.Filled() {
		t.Error("target should empty when the box leaves")
	}
}

func TestCrackedFloorNeverNegative(t *testing.T) {
	floor := &CrackedFloor{remaining: 2}
	box := newMoveable(KindBox, V(0, 0))

	for i := 0; i < 5; i++ {
		floor.OnEnter(box)
	}
	if floor.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", floor.Remaining())
	}

	floor = &CrackedFloor{remaining: 3}
	floor.OnEnter(newMoveable(KindPlayer, V(0, 0)))
	if floor.Remaining() != 3 {
		t.Errorf("player should not wear the floor, got %d", floor.Remaining())
	}
}

func TestButtonIgnoresPlayer(t *testing.T) {
	btn := &Button{symbol: 'a'}
	player := newMoveable(KindPlayer, V(0, 0))
	rock := newMoveable(KindRock, V(0, 0))

	if btn.OnEnter(player) || btn.Pressed() {
		t.Error("player should not press a button")
	}
	if !btn.OnEnter(rock) || !btn.Pressed() {
		t.Error("rock should press a button")
	}
	if !btn.OnLeave(rock) || btn.Pressed() {
		t.Error("button should release when the rock leaves")
	}
}

func TestDoorSetOpenReportsFlip(t *testing.T) {
	d := &Door{symbol: 'A'}
	if d.SetOpen(false) {
		t.Error("closing a closed door is not a flip")
	}
	if !d.SetOpen(true) {
		t.Error("opening a closed door is a flip")
	}
	if d.SetOpen(true) {
		t.Error("opening an open door is not a flip")
	}
}
