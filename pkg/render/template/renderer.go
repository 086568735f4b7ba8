package template

import (
	"io"
)

// TemplateRenderer is the seam HTML renderers draw through. Render writes
// the result to every supplied writer and also returns it.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
