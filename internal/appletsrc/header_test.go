package appletsrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Path
	}{
		{"single group", "[Containments]", Path{"Containments"}},
		{"nested path", "[Containments][12][Applets][546][Configuration][General]",
			Path{"Containments", "12", "Applets", "546", "Configuration", "General"}},
		{"surrounding whitespace", "  \t[ScreenMapping]  ", Path{"ScreenMapping"}},
		{"empty segment", "[Containments][][x]", Path{"Containments", "", "x"}},
		{"inner spaces kept", "[ a ][b c]", Path{" a ", "b c"}},
		{"duplicate segments", "[a][a]", Path{"a", "a"}},
		{"semicolon inside group", "[ActionPlugins][0][RightButton;NoModifier]",
			Path{"ActionPlugins", "0", "RightButton;NoModifier"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseHeader(1, tt.line)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHeader_NotAHeader(t *testing.T) {
	for _, line := range []string{"plugin=org.kde.panel", "", "   ", "key=[value]", "]stray"} {
		got, ok, err := ParseHeader(1, line)
		require.NoError(t, err, line)
		assert.False(t, ok, line)
		assert.Nil(t, got, line)
	}
}

func TestParseHeader_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unterminated last group", "[Containments][3"},
		{"unterminated only group", "[Containments"},
		{"text between groups", "[Containments] [3]"},
		{"text after groups", "[Containments][3]x"},
		{"nested open bracket", "[Contain[ments]"},
		{"key value after header", "[General]key=value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseHeader(42, tt.line)
			require.Error(t, err)
			assert.True(t, ok)
			assert.Nil(t, got)

			var herr *HeaderError
			require.ErrorAs(t, err, &herr)
			assert.Equal(t, 42, herr.Line)
			assert.Equal(t, tt.line, herr.Text)
			assert.Contains(t, err.Error(), "line 42")
		})
	}
}

func TestPathString(t *testing.T) {
	assert.Equal(t, "[Containments][2][Applets][3]", Path{"Containments", "2", "Applets", "3"}.String())
	assert.Equal(t, "", Path(nil).String())
}
