package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyler_PlainPassesThrough(t *testing.T) {
	s := NewStyler(false)

	assert.Equal(t, "Wrote", s.Success("Wrote"))
	assert.Equal(t, "failed", s.Error("failed"))
	assert.Equal(t, "dry run", s.Warning("dry run"))
	assert.Equal(t, "note", s.Muted("note"))
	assert.Equal(t, "Plan", s.Title("Plan"))
	assert.Equal(t, "a\nb", s.Box("a\nb"))
}

func TestStyler_LabelPadsToColumn(t *testing.T) {
	s := NewStyler(false)

	got := s.Label("From")
	assert.Equal(t, 14, len(got))
	assert.True(t, strings.HasPrefix(got, "From"))
}

func TestStyler_ColorKeepsText(t *testing.T) {
	s := NewStyler(true)

	assert.Contains(t, s.Success("Wrote"), "Wrote")
	assert.Contains(t, s.Box("inside"), "inside")
}
