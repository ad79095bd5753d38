// Package layout holds the typed Plasma layout model shared by the parser,
// the viewer and the bundle exporter.
package layout

import "slices"

// PanelPlugin is the plugin identifier Plasma uses for panel containments.
const PanelPlugin = "org.kde.panel"

// Layout is the root of a parsed appletsrc file.
type Layout struct {
	SourceFile   string        `json:"source_file"`
	Containments []Containment `json:"containments"`

	// KWin is the optional window manager scan attached by the CLI.
	KWin *KWinScan `json:"kwin,omitempty"`
}

// Containment is one desktop or panel surface.
type Containment struct {
	ID      uint32            `json:"id"`
	Plugin  *string           `json:"plugin,omitempty"`
	IsPanel bool              `json:"is_panel"`
	Meta    map[string]string `json:"meta"`
	Applets []Applet          `json:"applets"`

	// AppletOrder is the user's widget order, nil when not declared.
	AppletOrder []uint32 `json:"applet_order,omitempty"`

	// Config holds groups nested under the containment other than Applets,
	// e.g. "General" or "Wallpaper/org.kde.image/General".
	Config map[string]map[string]string `json:"config,omitempty"`
}

// Applet is one widget instance inside a containment.
type Applet struct {
	ID     uint32                       `json:"id"`
	Plugin *string                      `json:"plugin,omitempty"`
	Meta   map[string]string            `json:"meta"`
	Config map[string]map[string]string `json:"config"`
}

// KWinScan summarises kwinrc and kwinrulesrc.
type KWinScan struct {
	KWinRC      string      `json:"kwinrc"`
	KWinRulesRC string      `json:"kwinrulesrc"`
	Summary     KWinSummary `json:"summary"`
}

// KWinSummary is the subset of KWin settings copycat reports.
type KWinSummary struct {
	EnabledEffects []string `json:"enabled_effects"`
	EnabledScripts []string `json:"enabled_scripts"`

	// TaskSwitcher is the [TabBox] group.
	TaskSwitcher map[string]string `json:"task_switcher"`
	// TaskSwitcherAlternative is the [TabBoxAlternative] group.
	TaskSwitcherAlternative map[string]string `json:"task_switcher_alternative"`

	WindowRulesCount int `json:"window_rules_count"`
}

// PluginName returns the plugin identifier or fallback when none is declared.
func (c Containment) PluginName(fallback string) string {
	if c.Plugin == nil {
		return fallback
	}
	return *c.Plugin
}

// PluginName returns the plugin identifier or fallback when none is declared.
func (a Applet) PluginName(fallback string) string {
	if a.Plugin == nil {
		return fallback
	}
	return *a.Plugin
}

// Containment returns the containment with the given id.
func (l *Layout) Containment(id uint32) (Containment, bool) {
	for _, c := range l.Containments {
		if c.ID == id {
			return c, true
		}
	}
	return Containment{}, false
}

// Panels returns the panel containments in id order.
func (l *Layout) Panels() []Containment {
	var out []Containment
	for _, c := range l.Containments {
		if c.IsPanel {
			out = append(out, c)
		}
	}
	return out
}

// AppletCount returns the number of applets across all containments.
func (l *Layout) AppletCount() int {
	n := 0
	for _, c := range l.Containments {
		n += len(c.Applets)
	}
	return n
}

// PluginIDs returns the distinct applet plugin identifiers in the layout, sorted.
func (l *Layout) PluginIDs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range l.Containments {
		for _, a := range c.Applets {
			if a.Plugin == nil {
				continue
			}
			if _, ok := seen[*a.Plugin]; ok {
				continue
			}
			seen[*a.Plugin] = struct{}{}
			out = append(out, *a.Plugin)
		}
	}
	slices.Sort(out)
	return out
}
