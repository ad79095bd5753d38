package appletsrc

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Path is the ordered list of bracket segments naming one section.
type Path []string

// String renders the path back in header form.
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('[')
		b.WriteString(seg)
		b.WriteByte(']')
	}
	return b.String()
}

// key encodes the path as a map key. Length prefixes keep it unambiguous
// for segments containing any byte.
func (p Path) key() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteString(strconv.Itoa(len(seg)))
		b.WriteByte(':')
		b.WriteString(seg)
	}
	return b.String()
}

// Section is one path with its key/value pairs.
type Section struct {
	Path   Path
	Values map[string]string
}

// Tree maps section paths to their key/value pairs. It is built once by
// BuildTree and only read afterwards.
type Tree struct {
	sections map[string]*Section
}

func newTree() *Tree {
	return &Tree{sections: make(map[string]*Section)}
}

func (t *Tree) set(path Path, key, value string) {
	k := path.key()
	sec, ok := t.sections[k]
	if !ok {
		sec = &Section{Path: slices.Clone(path), Values: make(map[string]string)}
		t.sections[k] = sec
	}
	sec.Values[key] = value
}

// Lookup returns a copy of the key/value pairs stored at exactly path.
func (t *Tree) Lookup(path Path) (map[string]string, bool) {
	sec, ok := t.sections[path.key()]
	if !ok {
		return nil, false
	}
	return maps.Clone(sec.Values), true
}

// Len returns the number of sections holding at least one key.
func (t *Tree) Len() int {
	return len(t.sections)
}

// Sections returns every section ordered lexicographically by path segments.
// The value maps are shared with the tree and must not be modified.
func (t *Tree) Sections() []Section {
	out := make([]Section, 0, len(t.sections))
	for _, sec := range t.sections {
		out = append(out, *sec)
	}
	slices.SortFunc(out, func(a, b Section) int {
		return slices.Compare(a.Path, b.Path)
	})
	return out
}

// BuildTree consumes the lines of an appletsrc file in order.
//
// Blank lines and lines starting with '#' or ';' are skipped. A header line
// replaces the current path. A line containing '=' is split on the first
// '=' and stored under the current path, later values overwriting earlier
// ones. Key/value lines seen before any header and all other lines are
// ignored. The only error is a malformed header, reported as *HeaderError.
func BuildTree(lines []string) (*Tree, error) {
	tree := newTree()
	var current Path

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		path, isHeader, err := ParseHeader(i+1, raw)
		if err != nil {
			return nil, err
		}
		if isHeader {
			current = path
			continue
		}

		if current == nil {
			continue
		}
		k, v, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		tree.set(current, strings.TrimSpace(k), strings.TrimSpace(v))
	}
	return tree, nil
}
