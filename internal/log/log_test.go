package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withSettings(t *testing.T, l slog.Level, sections ...string) {
	sectionsMu.RLock()
	previous := enabledSections
	sectionsMu.RUnlock()
	previousLevel := level.Level()
	t.Cleanup(func() {
		EnableSections(previous...)
		SetLevel(previousLevel)
	})
	SetLevel(l)
	EnableSections(sections...)
}

func TestSectionFiltering(t *testing.T) {
	withSettings(t, slog.LevelDebug, "strategy")
	buf := &bytes.Buffer{}
	logger := slog.New(NewHandler(buf))

	logger.With("section", "strategy").Debug("kept through With")
	logger.Debug("kept through the record", "section", "strategy.simplify")
	logger.With("section", "rewrite").Info("dropped")
	logger.Debug("dropped too")
	logger.With("section", "rewrite").Warn("warnings always pass")

	out := buf.String()
	assert.Contains(t, out, "kept through With")
	assert.Contains(t, out, "kept through the record")
	assert.Contains(t, out, "warnings always pass")
	assert.NotContains(t, out, "dropped")
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.NotContains(t, out, `"time"`)
}

func TestSetLevel(t *testing.T) {
	withSettings(t, slog.LevelError, "strategy")
	buf := &bytes.Buffer{}
	logger := slog.New(NewHandler(buf)).With("section", "strategy")

	logger.Warn("below error")
	assert.Empty(t, buf.String())

	SetLevel(slog.LevelDebug)
	logger.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}
