// Package wishform is the convenience entry point: it re-exports the console
// orchestrator and the contract loader so simple embedders need one import.
package wishform

import (
	"github.com/goliatone/go-wishform/pkg/orchestrator"
	"github.com/goliatone/go-wishform/pkg/render"
)

// Console runs named actions over the wishlist and product forms.
type Console = orchestrator.Orchestrator

// Request names one console action.
type Request = orchestrator.Request

// Outcome is the rendered result of a Request.
type Outcome = orchestrator.Outcome

// RenderOptions carries per-render title, theme and focus.
type RenderOptions = render.RenderOptions

// Option configures a Console.
type Option = orchestrator.Option

// NewConsole builds a Console over api.
func NewConsole(api orchestrator.API, options ...Option) *Console {
	return orchestrator.New(api, options...)
}
