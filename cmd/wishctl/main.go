package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-wishform/internal/config"
	"github.com/goliatone/go-wishform/internal/metrics"
	"github.com/goliatone/go-wishform/internal/web"
	"github.com/goliatone/go-wishform/pkg/contract"
	"github.com/goliatone/go-wishform/pkg/logger"
	pkgopenapi "github.com/goliatone/go-wishform/pkg/openapi"
	"github.com/goliatone/go-wishform/pkg/orchestrator"
	"github.com/goliatone/go-wishform/pkg/render"
	"github.com/goliatone/go-wishform/pkg/renderers/tui"
)

const usage = `usage: wishctl [-config file] [-env file] <command> [flags]

commands:
  shell      interactive console in the terminal
  web        serve the console over HTTP
  run        run one action and print the console
  contract   verify the endpoint table against an OpenAPI document
`

func main() {
	configPath := flag.String("config", "", "YAML config file")
	envFile := flag.String("env", ".env", "dotenv file, ignored when missing")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	l := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, args := flag.Arg(0), flag.Args()[1:]
	switch command {
	case "shell":
		err = runShell(ctx, cfg, l)
	case "web":
		err = runWeb(ctx, cfg, l, args)
	case "run":
		err = runOnce(ctx, cfg, l, args)
	case "contract":
		err = runContract(ctx, cfg, l, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if errors.Is(err, errActionFailed) {
		stop()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

// errActionFailed exits non-zero after the console, status line included,
// has been printed.
var errActionFailed = errors.New("action failed")

func runShell(ctx context.Context, cfg *config.Config, l *logrus.Logger) error {
	console, err := newConsole(cfg, l, nil, os.Stdout)
	if err != nil {
		return err
	}
	shell, err := tui.New(console, tui.WithConfirmDeletes(true))
	if err != nil {
		return err
	}
	return shell.Run(ctx)
}

func runWeb(ctx context.Context, cfg *config.Config, l *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("web", flag.ExitOnError)
	listen := fs.String("listen", cfg.Listen, "address to listen on")
	origins := fs.String("cors", "", "comma separated allowed origins")
	title := fs.String("title", "", "page title")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m := metrics.New(true)
	console, err := newConsole(cfg, l, m, os.Stdout)
	if err != nil {
		return err
	}

	opts := []web.Option{
		web.WithLogger(l),
		web.WithMetrics(m),
		web.WithRenderOptions(render.RenderOptions{Title: *title, Theme: cfg.Theme, Variant: cfg.Variant}),
	}
	if *origins != "" {
		opts = append(opts, web.WithAllowedOrigins(strings.Split(*origins, ",")...))
	}
	srv := &http.Server{
		Addr:              *listen,
		Handler:           web.New(console, opts...).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.WithField("addr", srv.Addr).Info("console listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// assignments collects repeated -set name=value flags.
type assignments map[string]string

func (a assignments) String() string {
	pairs := make([]string, 0, len(a))
	for k, v := range a {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (a assignments) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	a[name] = value
	return nil
}

func runOnce(ctx context.Context, cfg *config.Config, l *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	resource := fs.String("resource", "wishlist", "wishlist or product")
	action := fs.String("action", "list", "action to run")
	rendererName := fs.String("renderer", "text", "text or html")
	output := fs.String("output", "", "output file (stdout if empty)")
	values := assignments{}
	fs.Var(values, "set", "field value as name=value, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	console, err := newConsole(cfg, l, nil, os.Stdout)
	if err != nil {
		return err
	}
	outcome, err := console.Run(ctx, orchestrator.Request{
		Resource:      *resource,
		Action:        *action,
		Values:        values,
		Renderer:      *rendererName,
		RenderOptions: render.RenderOptions{Theme: cfg.Theme, Variant: cfg.Variant},
	})
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, outcome.Output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Console written to %s\n", *output)
	} else {
		fmt.Print(string(outcome.Output))
	}
	if outcome.ActionErr != nil {
		return errActionFailed
	}
	return nil
}

func runContract(ctx context.Context, cfg *config.Config, l *logrus.Logger, args []string) error {
	fs := flag.NewFlagSet("contract", flag.ExitOnError)
	source := fs.String("source", cfg.Contract, "OpenAPI document path or URL (embedded contract if empty)")
	timeout := fs.Duration("timeout", 10*time.Second, "fetch timeout for URL sources")
	if err := fs.Parse(args); err != nil {
		return err
	}

	checker := contract.NewChecker(
		contract.WithLogger(l),
		contract.WithLoader(contract.NewLoader(pkgopenapi.WithHTTPFallback(*timeout))),
	)
	location := strings.TrimSpace(*source)
	if location == "" {
		if err := checker.CheckEmbedded(ctx); err != nil {
			return err
		}
		fmt.Println("embedded contract matches the dispatcher")
		return nil
	}

	src, err := pkgopenapi.SourceFor(location)
	if err != nil {
		return err
	}
	if err := checker.Check(ctx, src); err != nil {
		return err
	}
	fmt.Printf("%s matches the dispatcher\n", location)
	return nil
}
