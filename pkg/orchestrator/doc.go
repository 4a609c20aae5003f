// Package orchestrator wires the catalog, UI overlays, themes and renderers
// into a single Generate call.
package orchestrator
