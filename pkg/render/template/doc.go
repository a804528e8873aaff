// Package template defines the engine-agnostic template capability used by
// document renderers, plus helpers shared by the concrete engines under
// pongo and gotmpl. Engines escape interpolated values with EscapeMarkup.
package template
