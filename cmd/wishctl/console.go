package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-wishform/internal/config"
	"github.com/goliatone/go-wishform/internal/metrics"
	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/controller"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
	"github.com/goliatone/go-wishform/pkg/render"
	"github.com/goliatone/go-wishform/pkg/renderers/html"
	"github.com/goliatone/go-wishform/pkg/renderers/text"
)

// newConsole wires the dispatcher, both controllers and the text and html
// renderers from cfg. m may be nil.
func newConsole(cfg *config.Config, log logrus.FieldLogger, m *metrics.Metrics, out io.Writer) (*orchestrator.Orchestrator, error) {
	clientOpts := []client.Option{
		client.WithBaseURL(cfg.BaseURL),
		client.WithAPIKey(cfg.APIKey),
		client.WithLogger(log),
	}
	var controllerOpts []controller.Option
	if cfg.SilentCreate {
		controllerOpts = append(controllerOpts, controller.WithSilentCreateFailures())
	}
	if m != nil {
		clientOpts = append(clientOpts, client.WithObserver(m))
		controllerOpts = append(controllerOpts, controller.WithStaleHook(m.Stale))
	}

	themeName := cfg.Theme
	if themeName == "" {
		themeName = html.DefaultThemeName
	}
	selector, err := html.NewManifestSelector(themeName, cfg.Variant, html.DefaultManifest())
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	page, err := html.New(
		html.WithStylesheet("/assets/"+html.StylesheetName),
		html.WithThemeSelector(selector),
	)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	registry.MustRegister(text.New(text.WithFields(), text.WithColorFor(out)))
	registry.MustRegister(page)

	return orchestrator.New(
		client.New(clientOpts...),
		orchestrator.WithRegistry(registry),
		orchestrator.WithLogger(log),
		orchestrator.WithControllerOptions(controllerOpts...),
	), nil
}
