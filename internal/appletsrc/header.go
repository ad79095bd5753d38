package appletsrc

import (
	"fmt"
	"strings"
)

// HeaderError reports a section header line that is not a clean run of
// back-to-back bracket groups.
type HeaderError struct {
	Line   int    // 1-based line number
	Text   string // raw line as read
	Reason string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("bad section header at line %d: %s (%s)", e.Line, strings.TrimSpace(e.Text), e.Reason)
}

// ParseHeader tokenizes a section header such as
// "[Containments][12][Applets][546]" into its path segments.
//
// ok is false when the trimmed line does not start with '[' and therefore
// is not a header at all. A line that starts like a header but is not made
// of adjacent bracket groups only yields a *HeaderError. Segment contents
// are returned verbatim and may be empty.
func ParseHeader(lineNo int, raw string) (path Path, ok bool, err error) {
	rest := strings.TrimSpace(raw)
	if !strings.HasPrefix(rest, "[") {
		return nil, false, nil
	}

	fail := func(reason string) (Path, bool, error) {
		return nil, true, &HeaderError{Line: lineNo, Text: raw, Reason: reason}
	}

	for rest != "" {
		if rest[0] != '[' {
			return fail(fmt.Sprintf("unexpected %q after ']'", rest[0]))
		}
		end := strings.IndexAny(rest[1:], "[]")
		if end < 0 {
			return fail("unterminated '['")
		}
		end++
		if rest[end] == '[' {
			return fail("'[' inside a group")
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path, true, nil
}
