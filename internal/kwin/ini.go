package kwin

import "strings"

// iniFile is a flat INI document: section name -> key -> value.
type iniFile map[string]map[string]string

// parseINI reads KConfig-style flat sections. Lines before the first header,
// comments and lines without '=' are ignored; the last value for a key wins.
func parseINI(lines []string) iniFile {
	out := make(iniFile)
	var current map[string]string

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if name, ok := sectionName(line); ok {
			current = out[name]
			if current == nil {
				current = make(map[string]string)
				out[name] = current
			}
			continue
		}
		if current == nil {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		current[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// sectionName returns the text between the first '[' and the last ']'.
func sectionName(line string) (string, bool) {
	if line[0] != '[' {
		return "", false
	}
	end := strings.LastIndexByte(line, ']')
	if end <= 0 {
		return "", false
	}
	return line[1:end], true
}
