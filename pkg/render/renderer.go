package render

import (
	"context"
)

// Renderer converts a console Snapshot into a byte representation (HTML,
// plain text, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot Snapshot, options RenderOptions) ([]byte, error)
}
