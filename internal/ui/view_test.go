package ui

import (
	"strings"
	"testing"

	"github.com/five82/copycat/internal/layout"
)

func TestFitAndFill(t *testing.T) {
	if got := fit("containment", 6); got != "conta…" {
		t.Fatalf("fit = %q, want conta…", got)
	}
	if got := fit("abc", 0); got != "" {
		t.Fatalf("fit zero width = %q, want empty", got)
	}
	if got := fill("ab", 4); got != "ab  " {
		t.Fatalf("fill = %q, want %q", got, "ab  ")
	}
}

func TestContainmentDetail(t *testing.T) {
	c := layout.Containment{
		ID:          2,
		Plugin:      strPtr(layout.PanelPlugin),
		IsPanel:     true,
		Meta:        map[string]string{"plugin": layout.PanelPlugin, "location": "4"},
		AppletOrder: []uint32{18, 3},
		Applets: []layout.Applet{
			{ID: 3, Plugin: strPtr("org.kde.plasma.kickoff"), Config: map[string]map[string]string{"General": {"a": "b"}}},
			{ID: 18, Plugin: strPtr("org.kde.plasma.digitalclock"), Config: map[string]map[string]string{}},
		},
		Config: map[string]map[string]string{"General": {"AppletOrder": "18;3"}},
	}

	out := containmentDetail(c, 80, GetTheme("").Styles())
	for _, want := range []string{"panel containment 2", "location", "18;3", "Widgets (2)", "[General] 1 keys", "AppletOrder = 18;3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "digitalclock") > strings.Index(out, "kickoff") {
		t.Fatalf("widgets not in AppletOrder order:\n%s", out)
	}
}

func TestContainmentDetail_NoOrder(t *testing.T) {
	out := containmentDetail(layout.Containment{ID: 1, Meta: map[string]string{}}, 80, GetTheme("").Styles())
	if !strings.Contains(out, "(not set, by id)") || !strings.Contains(out, "none") {
		t.Fatalf("unexpected detail:\n%s", out)
	}
}

func TestKWinContent(t *testing.T) {
	styles := GetTheme("").Styles()
	if out := kwinContent(nil, 80, styles); !strings.Contains(out, "No KWin data") {
		t.Fatalf("nil layout = %q", out)
	}

	l := &layout.Layout{KWin: &layout.KWinScan{
		KWinRC: "/home/u/.config/kwinrc",
		Summary: layout.KWinSummary{
			EnabledEffects:          []string{"shakecursorEffect"},
			EnabledScripts:          []string{},
			TaskSwitcher:            map[string]string{"LayoutName": "thumbnail_grid"},
			TaskSwitcherAlternative: map[string]string{},
			WindowRulesCount:        2,
		},
	}}
	out := kwinContent(l, 80, styles)
	for _, want := range []string{"Enabled effects (1)", "shakecursorEffect", "Enabled scripts (0)", "LayoutName = thumbnail_grid", "not configured", "2 rules"} {
		if !strings.Contains(out, want) {
			t.Fatalf("kwin content missing %q:\n%s", want, out)
		}
	}
}

func TestHelpContentListsEveryBinding(t *testing.T) {
	k := DefaultKeyMap()
	out := helpContent(k, 60, GetTheme("").Styles())
	for _, group := range k.FullHelp() {
		for _, b := range group {
			if !strings.Contains(out, b.Help().Desc) {
				t.Fatalf("help missing %q", b.Help().Desc)
			}
		}
	}
}
