package contract

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/goliatone/go-wishform/pkg/client"
	pkgopenapi "github.com/goliatone/go-wishform/pkg/openapi"
)

// ErrMismatch is matched by every Mismatch.
var ErrMismatch = errors.New("contract mismatch")

// Mismatch describes one disagreement between the table and the document.
type Mismatch struct {
	Operation client.Operation
	Reason    string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: %s", m.Operation, m.Reason)
}

func (m *Mismatch) Is(target error) bool {
	return target == ErrMismatch
}

var paramPattern = regexp.MustCompile(`\{([^}]+)\}`)

func templateParams(path string) []string {
	var names []string
	for _, match := range paramPattern.FindAllStringSubmatch(path, -1) {
		names = append(names, match[1])
	}
	return names
}

// Verify compares every endpoint with the operation of the same id. All
// mismatches are reported together; the result is nil when none are found.
func Verify(ops map[string]pkgopenapi.Operation, endpoints []client.Endpoint) error {
	var result *multierror.Error
	add := func(op client.Operation, format string, args ...any) {
		result = multierror.Append(result, &Mismatch{Operation: op, Reason: fmt.Sprintf(format, args...)})
	}

	for _, ep := range endpoints {
		op, ok := ops[string(ep.Operation)]
		if !ok {
			add(ep.Operation, "operation not described")
			continue
		}
		if !strings.EqualFold(op.Method, ep.Method) {
			add(ep.Operation, "method %s, document says %s", ep.Method, op.Method)
		}
		if op.Path != ep.Path {
			add(ep.Operation, "path %s, document says %s", ep.Path, op.Path)
		}
		declared := make(map[string]bool, len(op.PathParams))
		for _, name := range op.PathParams {
			declared[name] = true
		}
		for _, name := range templateParams(ep.Path) {
			if !declared[name] {
				add(ep.Operation, "path parameter %q not declared", name)
			}
		}
		switch {
		case ep.HasBody && !op.HasRequestBody():
			add(ep.Operation, "sends a body the document does not accept")
		case !ep.HasBody && op.HasRequestBody():
			add(ep.Operation, "document expects a body that is never sent")
		case ep.HasBody:
			for _, field := range client.BodyFields(ep.Operation) {
				if _, ok := op.RequestBody.Properties[field]; !ok {
					add(ep.Operation, "body field %q not in document", field)
				}
			}
		}
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = formatMismatches
	return result.ErrorOrNil()
}

func formatMismatches(errs []error) string {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, "  * "+err.Error())
	}
	sort.Strings(lines)
	noun := "mismatches"
	if len(errs) == 1 {
		noun = "mismatch"
	}
	return fmt.Sprintf("contract: %d %s:\n%s", len(errs), noun, strings.Join(lines, "\n"))
}

// Mismatches unwraps the individual mismatches from a Verify error.
func Mismatches(err error) []*Mismatch {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		var single *Mismatch
		if errors.As(err, &single) {
			return []*Mismatch{single}
		}
		return nil
	}
	out := make([]*Mismatch, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		var m *Mismatch
		if errors.As(e, &m) {
			out = append(out, m)
		}
	}
	return out
}
