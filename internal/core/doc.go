// Package core provides fundamental types and utilities shared by the runner
// game and the terminal platform. It has no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core
