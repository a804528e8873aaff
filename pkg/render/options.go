package render

// RenderOptions carry per-run choices that do not belong to the metadata.
type RenderOptions struct {
	// TemplateName overrides the renderer's logical template name
	// (for example "configuration.md"). Empty keeps the renderer default.
	TemplateName string
	// Globals are merged into the template data next to "metadata". The
	// "metadata" key itself cannot be overridden.
	Globals map[string]any
}
