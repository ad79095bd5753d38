// Package textfile reads line-oriented configuration files into memory.
package textfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read returns every line of the file at path. Line terminators (LF or
// CRLF) and a leading UTF-8 byte order mark are stripped. The returned
// error wraps the underlying *fs.PathError, so callers can test it with
// errors.Is(err, fs.ErrNotExist).
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	lines, err := ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// ReadFrom returns every line readable from r. Lines have no length
// limit; Plasma stores some values (base64 blobs, long URL lists) on one
// line.
func ReadFrom(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(bytes.TrimPrefix(data, utf8BOM))
	if text == "" {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
