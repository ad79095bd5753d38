package ui

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/copycat/internal/layout"
)

// detailMetaKeys are the containment keys worth showing; the rest of the
// metadata is in layout.json.
var detailMetaKeys = []string{"location", "formfactor", "lastScreen", "immutability", "plugin"}

func containmentKind(c layout.Containment) string {
	switch {
	case c.IsPanel:
		return "panel"
	case c.Meta["wallpaperplugin"] != "":
		return "desktop"
	default:
		return "other"
	}
}

// containmentList renders the left pane, scrolled so the selection stays
// visible.
func (m Model) containmentList(width, height int) string {
	styles := m.theme.Styles()
	cs := m.containments()
	if len(cs) == 0 {
		return styles.MutedText.Render(fit(m.emptyMessage(), width))
	}

	start := 0
	if height > 0 && m.selected >= height {
		start = m.selected - height + 1
	}
	end := min(start+height, len(cs))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		c := cs[i]
		kind := fill(containmentKind(c), 8)
		rest := fmt.Sprintf("%4d  %s (%d)", c.ID, c.PluginName("?"), len(c.Applets))
		if i == m.selected {
			lines = append(lines, styles.Selected.Render(fill(kind+rest, width)))
			continue
		}
		badge := styles.FaintText
		switch {
		case c.IsPanel:
			badge = styles.PanelBadge
		case c.Meta["wallpaperplugin"] != "":
			badge = styles.DesktopBadge
		}
		lines = append(lines, badge.Render(fit(kind, width))+styles.Text.Render(fit(rest, width-8)))
	}
	return strings.Join(lines, "\n")
}

// containmentDetail renders the right pane for one containment.
func containmentDetail(c layout.Containment, width int, styles Styles) string {
	var lines []string
	add := func(s string) { lines = append(lines, s) }
	kv := func(k, v string) {
		const keyWidth = 14
		add(styles.MutedText.Render(fill(k, keyWidth)) + styles.Text.Render(fit(v, width-keyWidth)))
	}
	heading := func(s string) {
		add("")
		add(styles.AccentText.Bold(true).Render(fit(s, width)))
	}

	add(styles.Text.Bold(true).Render(fit(fmt.Sprintf("%s containment %d", containmentKind(c), c.ID), width)))
	kv("is_panel", strconv.FormatBool(c.IsPanel))
	for _, k := range detailMetaKeys {
		if v, ok := c.Meta[k]; ok {
			kv(k, v)
		}
	}
	if c.AppletOrder != nil {
		kv("AppletOrder", joinIDs(c.AppletOrder))
	} else {
		kv("AppletOrder", "(not set, by id)")
	}

	applets := c.AppletsInOrder()
	heading(fmt.Sprintf("Widgets (%d)", len(applets)))
	if len(applets) == 0 {
		add(styles.FaintText.Render(fit("  none", width)))
	}
	for i, a := range applets {
		add(styles.Text.Render(fit(fmt.Sprintf("%3d. %s  #%d", i+1, a.PluginName("(no plugin)"), a.ID), width)))
		for _, g := range slices.Sorted(maps.Keys(a.Config)) {
			add(styles.FaintText.Render(fit(fmt.Sprintf("       [%s] %d keys", g, len(a.Config[g])), width)))
		}
	}

	if len(c.Config) > 0 {
		heading("Config groups")
		for _, g := range slices.Sorted(maps.Keys(c.Config)) {
			add(styles.InfoText.Render(fit("  ["+g+"]", width)))
			for _, k := range slices.Sorted(maps.Keys(c.Config[g])) {
				add(styles.Text.Render(fit(fmt.Sprintf("    %s = %s", k, c.Config[g][k]), width)))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func joinIDs(ids []uint32) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ";")
}
