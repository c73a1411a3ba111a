// Package mcp exposes a sokoban session as Model Context Protocol tools so
// that an agent can play over stdio. One Server holds one session; every
// tool answers with the board and the current state.
package mcp
