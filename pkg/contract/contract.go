package contract

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"

	internalLoader "github.com/goliatone/go-wishform/internal/openapi/loader"
	internalParser "github.com/goliatone/go-wishform/internal/openapi/parser"
	"github.com/goliatone/go-wishform/pkg/client"
	"github.com/goliatone/go-wishform/pkg/logger"
	pkgopenapi "github.com/goliatone/go-wishform/pkg/openapi"
)

// EmbeddedName is the location reported for the built-in document.
const EmbeddedName = "contract/wishlists.yaml"

//go:embed wishlists.yaml
var embedded []byte

// Embedded returns the built-in contract document.
func Embedded() pkgopenapi.Document {
	return pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS(EmbeddedName), embedded)
}

// NewLoader builds the kin-openapi backed loader.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser builds the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// Checker loads documents and verifies endpoint tables against them.
type Checker struct {
	loader    pkgopenapi.Loader
	parser    pkgopenapi.Parser
	endpoints []client.Endpoint
	log       logrus.FieldLogger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLoader replaces the document loader.
func WithLoader(l pkgopenapi.Loader) Option {
	return func(c *Checker) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithParser replaces the operation parser.
func WithParser(p pkgopenapi.Parser) Option {
	return func(c *Checker) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithEndpoints checks a table other than client.Endpoints().
func WithEndpoints(endpoints []client.Endpoint) Option {
	return func(c *Checker) {
		c.endpoints = append([]client.Endpoint(nil), endpoints...)
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Checker) {
		if log != nil {
			c.log = log
		}
	}
}

// NewChecker returns a Checker over the dispatcher's endpoint table. URL
// sources are disabled unless a loader with HTTP support is supplied.
func NewChecker(options ...Option) *Checker {
	c := &Checker{
		loader:    NewLoader(),
		parser:    NewParser(),
		endpoints: client.Endpoints(),
		log:       logger.Discard(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Check loads src and verifies it.
func (c *Checker) Check(ctx context.Context, src pkgopenapi.Source) error {
	doc, err := c.loader.Load(ctx, src)
	if err != nil {
		return fmt.Errorf("contract: load: %w", err)
	}
	return c.CheckDocument(ctx, doc)
}

// CheckDocument verifies an already loaded document.
func (c *Checker) CheckDocument(ctx context.Context, doc pkgopenapi.Document) error {
	ops, err := c.parser.Operations(ctx, doc)
	if err != nil {
		return fmt.Errorf("contract: parse %s: %w", doc.Location(), err)
	}
	log := c.log.WithFields(logrus.Fields{
		"document":   doc.Location(),
		"operations": len(ops),
		"endpoints":  len(c.endpoints),
	})
	if err := Verify(ops, c.endpoints); err != nil {
		log.WithError(err).Warn("contract mismatch")
		return err
	}
	log.Debug("contract verified")
	return nil
}

// CheckEmbedded verifies the built-in contract.
func (c *Checker) CheckEmbedded(ctx context.Context) error {
	return c.CheckDocument(ctx, Embedded())
}
