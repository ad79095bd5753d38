package appletsrc

import (
	"fmt"
	"io"

	"github.com/five82/copycat/internal/layout"
	"github.com/five82/copycat/internal/textfile"
)

// DefaultFileName is the appletsrc file Plasma keeps under ~/.config.
const DefaultFileName = "plasma-org.kde.plasma.desktop-appletsrc"

// ParseFile reads and parses the appletsrc file at path. The caller always
// gets either a complete Layout or an error, never both.
func ParseFile(path string) (*layout.Layout, error) {
	lines, err := textfile.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read appletsrc: %w", err)
	}
	return parseLines(path, lines)
}

// Parse parses appletsrc content from r. sourceName is recorded as the
// layout's source file.
func Parse(sourceName string, r io.Reader) (*layout.Layout, error) {
	lines, err := textfile.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("read appletsrc: %w", err)
	}
	return parseLines(sourceName, lines)
}

func parseLines(sourceName string, lines []string) (*layout.Layout, error) {
	tree, err := BuildTree(lines)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", sourceName, err)
	}
	return &layout.Layout{
		SourceFile:   sourceName,
		Containments: Extract(tree),
	}, nil
}
