// Package text renders the console as aligned plain text for terminals and
// one-shot CLI runs.
package text

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"

	"github.com/goliatone/go-wishform/pkg/render"
)

type Option func(*Renderer)

// WithColor forces colour output on or off.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		r.color = enabled
	}
}

// WithColorFor enables colour when out is an interactive terminal.
func WithColorFor(out io.Writer) Option {
	return func(r *Renderer) {
		r.color = isTerminal(out)
	}
}

// WithFields includes the form groups in the output, not just status and
// tables.
func WithFields() Option {
	return func(r *Renderer) {
		r.fields = true
	}
}

// Renderer writes snapshots as plain text.
type Renderer struct {
	color  bool
	fields bool
}

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

func (r *Renderer) Render(_ context.Context, snapshot render.Snapshot, options render.RenderOptions) ([]byte, error) {
	var buf bytes.Buffer

	if title := strings.TrimSpace(options.Title); title != "" {
		fmt.Fprintln(&buf, r.paint(title, "white+b"))
	}
	if snapshot.Status != "" {
		fmt.Fprintln(&buf, r.paint(snapshot.Status, "green+b"))
	}

	if r.fields {
		for _, group := range snapshot.Groups {
			if err := r.writeGroup(&buf, group, options.Focus); err != nil {
				return nil, err
			}
		}
	}

	for _, table := range snapshot.Tables {
		if table.Empty() {
			continue
		}
		if options.Focus != "" && table.Resource != options.Focus {
			continue
		}
		if err := r.writeTable(&buf, table); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (r *Renderer) writeGroup(buf *bytes.Buffer, group render.Group, focus string) error {
	heading := "[" + group.Label + "]"
	if group.Resource == focus {
		heading = r.paint(heading, "cyan+b")
	}
	fmt.Fprintln(buf, heading)

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	for _, field := range group.Fields {
		fmt.Fprintf(tw, "  %s:\t%s\n", field.Label, field.Value)
	}
	return tw.Flush()
}

func (r *Renderer) writeTable(buf *bytes.Buffer, table render.Table) error {
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	headings := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		headings[i] = r.paint(strings.ToUpper(column), "white+b")
	}
	fmt.Fprintln(tw, strings.Join(headings, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (r *Renderer) paint(s, style string) string {
	if !r.color {
		return s
	}
	return ansi.Color(s, style)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
