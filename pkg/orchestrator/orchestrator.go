package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-wishform/pkg/controller"
	"github.com/goliatone/go-wishform/pkg/form"
	"github.com/goliatone/go-wishform/pkg/logger"
	"github.com/goliatone/go-wishform/pkg/render"
	"github.com/goliatone/go-wishform/pkg/renderers/text"
)

const defaultRendererName = "text"

// ErrUnknownResource is returned for requests naming an unregistered resource.
var ErrUnknownResource = errors.New("orchestrator: unknown resource")

// API is the dispatcher surface both controllers need.
type API interface {
	controller.WishlistAPI
	controller.ProductAPI
}

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithState injects the form state shared by every controller.
func WithState(state *form.State) Option {
	return func(o *Orchestrator) {
		if state != nil {
			o.state = state
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger sets the logger passed to the controllers.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// WithControllerOptions forwards options to both controllers.
func WithControllerOptions(options ...controller.Option) Option {
	return func(o *Orchestrator) {
		o.controllerOptions = append(o.controllerOptions, options...)
	}
}

// Orchestrator owns the console state: the form fields, the status line and
// one results table per resource.
type Orchestrator struct {
	state             *form.State
	status            *render.StatusLine
	tables            map[string]*render.TableBuffer
	resources         *ResourceRegistry
	registry          *render.Registry
	defaultRenderer   string
	log               logrus.FieldLogger
	controllerOptions []controller.Option
}

// New builds the wishlist and product controllers over api. Missing
// dependencies are initialised with built-in defaults (empty form, text
// renderer).
func New(api API, options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		log:             logger.Discard(),
		status:          render.NewStatusLine(),
		tables:          make(map[string]*render.TableBuffer),
		resources:       NewResourceRegistry(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.state == nil {
		o.state = form.NewState(nil)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(text.New(text.WithFields()))
	}

	wishlistTable := render.NewTableBuffer()
	productTable := render.NewTableBuffer()

	o.resources.MustRegister(controller.NewWishlistController(api, o.state, o.controllerOptionsFor(wishlistTable)...))
	o.resources.MustRegister(controller.NewProductController(api, o.state, o.controllerOptionsFor(productTable)...))
	o.tables[form.WishlistGroup().Resource] = wishlistTable
	o.tables[form.ProductGroup().Resource] = productTable
	return o
}

func (o *Orchestrator) controllerOptionsFor(table *render.TableBuffer) []controller.Option {
	opts := []controller.Option{
		controller.WithLogger(o.log),
		controller.WithStatus(o.status),
		controller.WithTable(table),
	}
	return append(opts, o.controllerOptions...)
}

// Request names one action and the field values to apply before it runs.
type Request struct {
	Resource string
	Action   string

	// Values are written into the form before dispatch. Fields not owned by
	// the target resource are applied too, so a full page post round-trips.
	Values map[string]string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	RenderOptions render.RenderOptions
}

// Outcome is the result of Run. ActionErr carries the dispatcher failure that
// the status line is already showing; it is not an orchestration error.
type Outcome struct {
	Output      []byte
	ContentType string
	ActionErr   error
}

// Run applies the request values, executes the action and renders the
// console.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Outcome, error) {
	if ctx == nil {
		return Outcome{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	resource, err := o.resources.Get(req.Resource)
	if err != nil {
		return Outcome{}, err
	}
	action := controller.Action(normalizeName(req.Action))
	if !supports(resource, action) {
		return Outcome{}, fmt.Errorf("orchestrator: %w: %s %s", controller.ErrUnknownAction, resource.Group().Resource, action)
	}

	o.Apply(req.Values)

	actionErr := resource.Do(ctx, action)
	if actionErr != nil && !errors.Is(actionErr, controller.ErrSuperseded) {
		o.log.WithFields(logrus.Fields{
			"resource": resource.Group().Resource,
			"action":   action,
		}).WithError(actionErr).Info("action finished with failure")
	}

	opts := req.RenderOptions
	if opts.Focus == "" {
		opts.Focus = resource.Group().Resource
	}
	output, contentType, err := o.Render(ctx, req.Renderer, opts)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Output: output, ContentType: contentType, ActionErr: actionErr}, nil
}

// Render draws the current console without running an action.
func (o *Orchestrator) Render(ctx context.Context, rendererName string, opts render.RenderOptions) ([]byte, string, error) {
	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return nil, "", err
	}
	output, err := renderer.Render(ctx, o.Snapshot(), opts)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, renderer.ContentType(), nil
}

// Apply writes values into the form, ignoring names no group owns.
func (o *Orchestrator) Apply(values map[string]string) {
	if len(values) == 0 {
		return
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !o.owns(name) {
			continue
		}
		o.state.SetValue(name, values[name])
	}
}

func (o *Orchestrator) owns(field string) bool {
	for _, name := range o.resources.List() {
		resource, err := o.resources.Get(name)
		if err == nil && resource.Group().Has(field) {
			return true
		}
	}
	return false
}

// Snapshot captures the console for rendering.
func (o *Orchestrator) Snapshot() render.Snapshot {
	sections := make([]render.Section, 0, len(o.resources.List()))
	for _, name := range o.resources.List() {
		resource, err := o.resources.Get(name)
		if err != nil {
			continue
		}
		sections = append(sections, render.Section{
			Group:   resource.Group(),
			Actions: actionNames(resource.Actions()),
			Table:   o.tables[name],
		})
	}
	return render.Capture(o.state, o.status, sections...)
}

// Resources lists the resource names in display order.
func (o *Orchestrator) Resources() []string {
	return o.resources.List()
}

// Actions lists the actions a resource offers.
func (o *Orchestrator) Actions(resource string) ([]string, error) {
	r, err := o.resources.Get(resource)
	if err != nil {
		return nil, err
	}
	return actionNames(r.Actions()), nil
}

// Inputs lists the fields an action reads.
func (o *Orchestrator) Inputs(resource, action string) ([]string, error) {
	r, err := o.resources.Get(resource)
	if err != nil {
		return nil, err
	}
	return r.Inputs(controller.Action(normalizeName(action))), nil
}

// State exposes the shared form state.
func (o *Orchestrator) State() *form.State {
	return o.state
}

// Status returns the current status message.
func (o *Orchestrator) Status() string {
	return o.status.Text()
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func supports(resource Resource, action controller.Action) bool {
	for _, candidate := range resource.Actions() {
		if candidate == action {
			return true
		}
	}
	return false
}

func actionNames(actions []controller.Action) []string {
	out := make([]string, len(actions))
	for i, action := range actions {
		out[i] = string(action)
	}
	return out
}
