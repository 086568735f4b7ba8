// Package query assembles the optional filter query of the wishlist list
// operation.
package query

import (
	"net/url"
	"strings"
)

// Filter carries the list filters read from the form at call time. Empty
// values are treated as absent.
type Filter struct {
	Owner string
	Start string
	End   string
}

type param struct {
	key   string
	value string
}

// params returns the filters in their fixed wire order.
func (f Filter) params() []param {
	return []param{
		{key: "owner", value: f.Owner},
		{key: "start", value: f.Start},
		{key: "end", value: f.End},
	}
}

// IsEmpty reports whether no filter is present.
func (f Filter) IsEmpty() bool {
	return Build(f) == ""
}

// Build renders the present filters as key=value pairs joined by "&" in the
// order owner, start, end. Values are percent-encoded. An empty filter
// yields "".
func Build(f Filter) string {
	var b strings.Builder
	for _, p := range f.params() {
		if p.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Endpoint appends the query to base only when at least one filter is set.
func Endpoint(base string, f Filter) string {
	q := Build(f)
	if q == "" {
		return base
	}
	return base + "?" + q
}
