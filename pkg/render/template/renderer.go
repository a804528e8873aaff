package template

// TemplateRenderer is the seam between document renderers and a concrete
// template engine. Templates are addressed by logical name; engines append
// their own file extension.
type TemplateRenderer interface {
	RenderTemplate(name string, data any) (string, error)
}
