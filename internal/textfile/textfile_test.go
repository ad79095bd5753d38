package textfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "empty file", content: "", want: nil},
		{name: "lf endings", content: "a\nb\n", want: []string{"a", "b"}},
		{name: "crlf endings", content: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "no trailing newline", content: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines kept", content: "a\n\n  \nb\n", want: []string{"a", "", "  ", "b"}},
		{name: "only newline", content: "\n", want: []string{""}},
		{name: "trailing blank line", content: "a\n\n", want: []string{"a", ""}},
		{name: "bare cr kept inside line", content: "a\rb\n", want: []string{"a\rb"}},
		{name: "bom stripped", content: "\xEF\xBB\xBF[General]\nx=1\n", want: []string{"[General]", "x=1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "file.rc")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	lines, err := ReadFrom(strings.NewReader("k=" + long + "\nnext\n"))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "k="+long, lines[0])
}

func TestRead_LineLongerThanScannerLimits(t *testing.T) {
	blob := strings.Repeat("A", 5*1024*1024)
	lines, err := ReadFrom(strings.NewReader("[Containments][1]\r\nblob=" + blob + "\r\nplugin=org.kde.panel"))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "blob="+blob, lines[1])
	assert.Equal(t, "plugin=org.kde.panel", lines[2])
}

func TestRead_MissingFileKeepsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.rc")

	_, err := Read(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, path, pathErr.Path)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kwinrc")
	require.NoError(t, os.WriteFile(path, []byte("[Plugins]\n"), 0o644))

	assert.True(t, Exists(path))
	assert.False(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope")))
}
