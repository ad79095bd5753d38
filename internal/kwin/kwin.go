// Package kwin summarises the KWin window manager configuration files that
// sit next to the Plasma appletsrc.
package kwin

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/copycat/internal/layout"
	"github.com/five82/copycat/internal/textfile"
)

const (
	pluginsGroup     = "Plugins"
	tabBoxGroup      = "TabBox"
	tabBoxAltGroup   = "TabBoxAlternative"
	rulesGeneral     = "General"
	enabledSuffix    = "Enabled"
	effectNameMarker = "effect"
)

// Scan reads kwinrc and kwinrulesrc and builds a summary. A file that does
// not exist contributes nothing; any other read failure is returned.
func Scan(kwinrcPath, kwinrulesrcPath string) (*layout.KWinScan, error) {
	scan := &layout.KWinScan{
		KWinRC:      kwinrcPath,
		KWinRulesRC: kwinrulesrcPath,
		Summary: layout.KWinSummary{
			EnabledEffects:          []string{},
			EnabledScripts:          []string{},
			TaskSwitcher:            map[string]string{},
			TaskSwitcherAlternative: map[string]string{},
		},
	}

	rc, err := readOptional(kwinrcPath)
	if err != nil {
		return nil, fmt.Errorf("read kwinrc: %w", err)
	}
	if rc != nil {
		summarizeKWinRC(&scan.Summary, rc)
	}

	rules, err := readOptional(kwinrulesrcPath)
	if err != nil {
		return nil, fmt.Errorf("read kwinrulesrc: %w", err)
	}
	if rules != nil {
		scan.Summary.WindowRulesCount = countRules(rules)
	}
	return scan, nil
}

func readOptional(path string) (iniFile, error) {
	if path == "" {
		return nil, nil
	}
	lines, err := textfile.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return parseINI(lines), nil
}

func summarizeKWinRC(s *layout.KWinSummary, rc iniFile) {
	for key, value := range rc[pluginsGroup] {
		name, ok := strings.CutSuffix(key, enabledSuffix)
		if !ok || name == "" || !strings.EqualFold(value, "true") {
			continue
		}
		if strings.Contains(strings.ToLower(name), effectNameMarker) {
			s.EnabledEffects = append(s.EnabledEffects, name)
		} else {
			s.EnabledScripts = append(s.EnabledScripts, name)
		}
	}
	slices.Sort(s.EnabledEffects)
	slices.Sort(s.EnabledScripts)

	if g, ok := rc[tabBoxGroup]; ok {
		s.TaskSwitcher = maps.Clone(g)
	}
	if g, ok := rc[tabBoxAltGroup]; ok {
		s.TaskSwitcherAlternative = maps.Clone(g)
	}
}

// countRules counts rule groups. Older files number their groups [1], [2];
// Plasma 6 keys them by uuid and lists them in [General] rules=.
func countRules(rules iniFile) int {
	numbered := make(map[uint64]struct{})
	for name := range rules {
		if id, err := strconv.ParseUint(name, 10, 32); err == nil {
			numbered[id] = struct{}{}
		}
	}
	if len(numbered) > 0 {
		return len(numbered)
	}

	n := 0

	general := rules[rulesGeneral]
	if list, ok := general["rules"]; ok {
		for _, id := range strings.Split(list, ",") {
			if strings.TrimSpace(id) != "" {
				n++
			}
		}
		return n
	}
	if c, err := strconv.Atoi(general["count"]); err == nil && c > 0 {
		return c
	}
	return 0
}
