// Package core provides the board state machine for the Sokoban puzzle game:
// level parsing, tile behaviour, push resolution, button/door groups and
// teleporter pairing. This package is UI-agnostic and deterministic.
package core

import "fmt"

// Vector is an immutable integer pair used both as a board position and as a
// displacement. X increases to the right, Y increases downward.
type Vector struct {
	X int
	Y int
}

// V is a convenience constructor for Vector.
func V(x, y int) Vector {
	return Vector{X: x, Y: y}
}

// String returns a string representation of the vector.
func (v Vector) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Add returns the component-wise sum.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul scales both components by s.
func (v Vector) Mul(s int) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Negate flips the sign of both components.
func (v Vector) Negate() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Normalize divides each component by its own absolute value, leaving zero
// components untouched. The result only tells the orientation of v.
func (v Vector) Normalize() Vector {
	return Vector{X: sign(v.X), Y: sign(v.Y)}
}

// Manhattan returns the Manhattan distance to another vector.
func (v Vector) Manhattan(o Vector) int {
	return abs(v.X-o.X) + abs(v.Y-o.Y)
}

// IsNeighbor reports whether o is a direct horizontal or vertical neighbour.
func (v Vector) IsNeighbor(o Vector) bool {
	return v.Manhattan(o) == 1
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
