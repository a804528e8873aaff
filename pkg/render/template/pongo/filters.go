package pongo

import (
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-propdoc/pkg/render/template"
)

var registerOnce sync.Once

// registerFilters installs the markdown filters. pongo2 keeps filters in a
// process-wide table, and autoescape calls whatever is registered as
// "escape", so replacing it narrows autoescaping to &, < and >.
func registerFilters() {
	registerOnce.Do(func() {
		_ = pongo2.ReplaceFilter("escape", filterEscapeMarkup)
		_ = pongo2.ReplaceFilter("e", filterEscapeMarkup)
		if !pongo2.FilterExists("tablecell") {
			_ = pongo2.RegisterFilter("tablecell", filterTableCell)
		}
	})
}

func filterEscapeMarkup(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(template.EscapeMarkup(in.String())), nil
}

func filterTableCell(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(template.TableCell(in.String())), nil
}
