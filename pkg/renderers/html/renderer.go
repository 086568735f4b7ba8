package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/render"
	rendertemplate "github.com/goliatone/go-wishform/pkg/render/template"
	gotemplate "github.com/goliatone/go-wishform/pkg/render/template/gotemplate"
)

const (
	consoleTemplate = "templates/console.tmpl"
	defaultTitle    = "Wishlists"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	basePath         string
	selector         theme.ThemeSelector
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links the page to a stylesheet URL.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithBasePath prefixes every action URL, for consoles mounted under a
// sub-path.
func WithBasePath(path string) Option {
	return func(cfg *config) {
		cfg.basePath = strings.TrimRight(strings.TrimSpace(path), "/")
	}
}

// WithThemeSelector resolves RenderOptions.Theme into CSS variables.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		cfg.selector = selector
	}
}

// Renderer draws the console as a single HTML page.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
	basePath   string
	selector   theme.ThemeSelector
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:  renderer,
		stylesheet: cfg.stylesheet,
		basePath:   cfg.basePath,
		selector:   cfg.selector,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, snapshot render.Snapshot, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	themeCtx, err := r.theme(options)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = defaultTitle
	}

	result, err := r.templates.RenderTemplate(consoleTemplate, map[string]any{
		"title":      title,
		"stylesheet": r.stylesheet,
		"base":       r.basePath,
		"theme":      themeCtx,
		"status":     sanitizeStatus(snapshot.Status),
		"groups":     groupViews(snapshot.Groups, options.Focus),
		"tables":     tableViews(snapshot),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) theme(options render.RenderOptions) (themeView, error) {
	if r.selector == nil {
		return themeView{}, nil
	}
	selection, err := r.selector.Select(options.Theme, options.Variant)
	if err != nil {
		return themeView{}, fmt.Errorf("html renderer: select theme: %w", err)
	}
	return buildThemeView(selection), nil
}

type fieldView struct {
	Name  string
	Label string
	Value string
	Type  string
}

type groupView struct {
	Resource string
	Label    string
	Focus    bool
	Fields   []fieldView
	Actions  []string
}

type tableView struct {
	Resource string
	Caption  string
	Columns  []string
	Rows     [][]string
}

func groupViews(groups []render.Group, focus string) []groupView {
	out := make([]groupView, 0, len(groups))
	for _, group := range groups {
		view := groupView{
			Resource: group.Resource,
			Label:    group.Label,
			Focus:    focus != "" && focus == group.Resource,
			Actions:  group.Actions,
			Fields:   make([]fieldView, 0, len(group.Fields)),
		}
		for _, field := range group.Fields {
			view.Fields = append(view.Fields, fieldView{
				Name:  field.Name,
				Label: field.Label,
				Value: field.Value,
				Type:  inputType(field.Name),
			})
		}
		out = append(out, view)
	}
	return out
}

func tableViews(snapshot render.Snapshot) []tableView {
	out := make([]tableView, 0, len(snapshot.Tables))
	for _, table := range snapshot.Tables {
		if table.Empty() {
			continue
		}
		out = append(out, tableView{
			Resource: table.Resource,
			Caption:  caption(table),
			Columns:  table.Columns,
			Rows:     table.Rows,
		})
	}
	return out
}

func caption(table render.Table) string {
	noun := table.Resource + "s"
	if len(table.Rows) == 1 {
		noun = table.Resource
	}
	return fmt.Sprintf("%d %s", len(table.Rows), noun)
}

func inputType(name string) string {
	switch name {
	case form.StartFilter, form.EndFilter:
		return "date"
	default:
		return "text"
	}
}
