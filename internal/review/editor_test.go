package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwmars/mkdbupgrade/internal/logging"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

func TestEditorFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"none", map[string]string{}, ""},
		{"editor only", map[string]string{"EDITOR": "vi"}, "vi"},
		{"visual beats editor", map[string]string{"EDITOR": "vi", "VISUAL": "code --wait"}, "code --wait"},
		{"tool variable wins", map[string]string{"EDITOR": "vi", "VISUAL": "emacs", "MKDBUPGRADE_EDITOR": "nano"}, "nano"},
		{"blank is skipped", map[string]string{"MKDBUPGRADE_EDITOR": "  ", "EDITOR": "vi"}, "vi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EditorFromEnv(func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEditorReviewer_NilLogger(t *testing.T) {
	assert.Panics(t, func() { NewEditorReviewer("vi", nil) })
}

func TestReview_NoEditor(t *testing.T) {
	r := NewEditorReviewer("   ", logging.NewNullLogger())
	err := r.Review(context.Background(), "/tmp/x.sql")
	require.Error(t, err)
	assert.True(t, errors.Is(err, mkdbupgrade.ErrEditorNotConfigured))
}

// fakeEditor writes a shell script that records its arguments next to itself.
func fakeEditor(t *testing.T, exitCode int) (script, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script editor not available on windows")
	}
	dir := t.TempDir()
	script = filepath.Join(dir, "editor.sh")
	argsFile = filepath.Join(dir, "args")
	body := "#!/bin/sh\nprintf '%s\\n' \"$@\" > \"$(dirname \"$0\")/args\"\nexit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))
	return script, argsFile
}

func TestReview_RunsEditorWithPath(t *testing.T) {
	script, argsFile := fakeEditor(t, 0)
	r := NewEditorReviewer(script+" --wait", logging.NewNullLogger())

	require.NoError(t, r.Review(context.Background(), "/work/3.7.4-3.15.4-upgrade-db.sql"))

	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "--wait\n/work/3.7.4-3.15.4-upgrade-db.sql\n", string(got))
}

func TestReview_EditorFails(t *testing.T) {
	script, _ := fakeEditor(t, 3)
	r := NewEditorReviewer(script, logging.NewNullLogger())

	err := r.Review(context.Background(), "/work/out.sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/work/out.sql")
	assert.False(t, errors.Is(err, mkdbupgrade.ErrEditorNotConfigured))
}

func TestReview_MissingBinary(t *testing.T) {
	r := NewEditorReviewer("definitely-not-an-editor-binary", logging.NewNullLogger())
	err := r.Review(context.Background(), "/work/out.sql")
	assert.Error(t, err)
}
