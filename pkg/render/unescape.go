package render

import "strings"

// UnescapeHTML reverses the engine's HTML escaping of the three characters a
// Markdown document needs verbatim. The passes run in a fixed order, &lt; then
// &gt; then &amp;, over the whole text; other entities are left alone.
//
// Because &amp; is handled last, "&amp;lt;" becomes "&lt;" rather than "<".
func UnescapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	return strings.ReplaceAll(s, "&amp;", "&")
}
