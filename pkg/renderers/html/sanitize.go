package html

import (
	stdhtml "html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	statusPolicyOnce sync.Once
	statusPolicy     *bluemonday.Policy
)

// sanitizeStatus strips markup from status text and returns plain text; the
// template escapes it again on output.
func sanitizeStatus(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(stdhtml.UnescapeString(statusSanitizer().Sanitize(trimmed)))
}

func statusSanitizer() *bluemonday.Policy {
	statusPolicyOnce.Do(func() {
		statusPolicy = bluemonday.StrictPolicy()
	})
	return statusPolicy
}
