package core

import "testing"

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vector
	}{
		{DirNone, V(0, 0)},
		{DirNorth, V(0, -1)},
		{DirEast, V(1, 0)},
		{DirSouth, V(0, 1)},
		{DirWest, V(-1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := tt.dir.Vector(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got := DirectionOf(tt.want); got != tt.dir {
				t.Errorf("DirectionOf: expected %v, got %v", tt.dir, got)
			}
		})
	}
}

func TestDirectionInverse(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{DirNone, DirNone},
		{DirNorth, DirSouth},
		{DirEast, DirWest},
		{DirSouth, DirNorth},
		{DirWest, DirEast},
	}
	for _, tt := range tests {
		if got := tt.dir.Inverse(); got != tt.want {
			t.Errorf("%v.Inverse(): expected %v, got %v", tt.dir, tt.want, got)
		}
	}
}

func TestDirectionBetween(t *testing.T) {
	if got := DirectionBetween(V(2, 2), V(2, 9)); got != DirSouth {
		t.Errorf("expected South, got %v", got)
	}
	if got := DirectionBetween(V(2, 2), V(0, 2)); got != DirWest {
		t.Errorf("expected West, got %v", got)
	}
	if got := DirectionBetween(V(2, 2), V(3, 3)); got != DirNone {
		t.Errorf("expected None for a diagonal, got %v", got)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		letter rune
		want   Direction
		ok     bool
	}{
		{'N', DirNorth, true},
		{'O', DirEast, true},
		{'S', DirSouth, true},
		{'W', DirWest, true},
		{'E', DirNone, false},
		{'n', DirNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseDirection(tt.letter)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDirection(%q): expected (%v,%v), got (%v,%v)", tt.letter, tt.want, tt.ok, got, ok)
		}
	}
}
