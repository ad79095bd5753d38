package ui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/five82/copycat/internal/layout"
)

// kwinContent renders the KWin tab: overview, effects, scripts, both task
// switchers and window rules.
func kwinContent(l *layout.Layout, width int, styles Styles) string {
	if l == nil || l.KWin == nil {
		return styles.MutedText.Render(fit("No KWin data: kwinrc was not found.", width))
	}
	sum := l.KWin.Summary

	var lines []string
	add := func(s string) { lines = append(lines, s) }
	heading := func(title string) {
		if len(lines) > 0 {
			add("")
		}
		add(styles.AccentText.Bold(true).Render(fit(title, width)))
	}
	item := func(s string) { add(styles.Text.Render(fit("  "+s, width))) }
	list := func(names []string) {
		if len(names) == 0 {
			add(styles.FaintText.Render(fit("  none", width)))
		}
		for _, n := range names {
			item(n)
		}
	}
	group := func(kv map[string]string) {
		if len(kv) == 0 {
			add(styles.FaintText.Render(fit("  not configured", width)))
		}
		for _, k := range slices.Sorted(maps.Keys(kv)) {
			item(fmt.Sprintf("%s = %s", k, kv[k]))
		}
	}

	heading("Overview")
	item("kwinrc       " + l.KWin.KWinRC)
	item("kwinrulesrc  " + l.KWin.KWinRulesRC)

	heading(fmt.Sprintf("Enabled effects (%d)", len(sum.EnabledEffects)))
	list(sum.EnabledEffects)

	heading(fmt.Sprintf("Enabled scripts (%d)", len(sum.EnabledScripts)))
	list(sum.EnabledScripts)

	heading("Task switcher")
	group(sum.TaskSwitcher)

	heading("Alternative task switcher")
	group(sum.TaskSwitcherAlternative)

	heading("Window rules")
	item(fmt.Sprintf("%d rules", sum.WindowRulesCount))

	return strings.Join(lines, "\n")
}
