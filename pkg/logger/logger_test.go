package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewFallsBackToInfo(t *testing.T) {
	log := NewWithOutput("nonsense", &bytes.Buffer{})
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("level: got %s", log.GetLevel())
	}
}

func TestWithFieldsWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput("debug", &buf)
	WithFields(log, logrus.Fields{"resource": "wishlist"}).Debug("dispatch")

	out := buf.String()
	if !strings.Contains(out, "resource=wishlist") || !strings.Contains(out, "dispatch") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestWithFieldsNilLogger(t *testing.T) {
	WithFields(nil, logrus.Fields{"a": 1}).Info("dropped")
}
