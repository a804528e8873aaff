package template

import "strings"

var tableCellReplacer = strings.NewReplacer(
	"\r\n", "<br>",
	"\n", "<br>",
	"\r", "<br>",
	"|", `\|`,
)

// TableCell makes s safe to place inside a single Markdown table cell: pipes
// are escaped and line breaks become <br>. Surrounding whitespace is trimmed.
func TableCell(s string) string {
	return tableCellReplacer.Replace(strings.TrimSpace(s))
}

var markupReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeMarkup escapes &, < and >. Quotes and every other character pass
// through, so render.UnescapeHTML restores the original text exactly.
func EscapeMarkup(s string) string {
	return markupReplacer.Replace(s)
}
