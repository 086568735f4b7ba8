package wishform

import (
	"io/fs"

	"github.com/goliatone/go-wishform/pkg/renderers/html"
)

// EmbeddedTemplates exposes the console page templates so callers can copy
// or extend them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the console stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(wishform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
