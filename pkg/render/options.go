package render

// RenderOptions describe per-request presentation choices that do not belong
// in the snapshot itself.
type RenderOptions struct {
	// Title overrides the heading shown above the console.
	Title string
	// Theme and Variant select a theme from the renderer's theme provider.
	// Renderers without theming ignore both.
	Theme   string
	Variant string
	// Focus names the resource whose section should be highlighted, usually
	// the one the last action targeted.
	Focus string
}
