// Package ui holds terminal helpers: ANSI colours that switch off when stdout
// is not a terminal, and the per-image console notices.
package ui
