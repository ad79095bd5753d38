package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/template"

	"github.com/five82/copycat/internal/appletsrc"
	"github.com/five82/copycat/internal/layout"
)

// Panel locations as Plasma stores them in the containment's location key.
var panelLocations = map[string]string{
	"3": "top",
	"4": "bottom",
	"5": "left",
	"6": "right",
}

const (
	defaultPanelLocation = "bottom"
	wallpaperPluginKey   = "wallpaperplugin"
	wallpaperGroupPrefix = "Wallpaper/"
)

// restoreData is the JSON document embedded in restore-layout.js.
type restoreData struct {
	Source   string         `json:"source"`
	Panels   []restorePanel `json:"panels"`
	Desktops []restoreDesk  `json:"desktops"`
}

type restorePanel struct {
	ID       uint32          `json:"id"`
	Location string          `json:"location"`
	Widgets  []restoreWidget `json:"widgets"`
}

type restoreWidget struct {
	Plugin string         `json:"plugin"`
	Config []configWrites `json:"config"`
}

type restoreDesk struct {
	ID              uint32         `json:"id"`
	WallpaperPlugin string         `json:"wallpaperPlugin"`
	Wallpaper       []configWrites `json:"wallpaper"`
}

// configWrites is one config group, addressed as a currentConfigGroup path.
type configWrites struct {
	Group   []string          `json:"group"`
	Entries map[string]string `json:"entries"`
}

func buildRestoreData(l *layout.Layout) restoreData {
	data := restoreData{
		Source:   l.SourceFile,
		Panels:   []restorePanel{},
		Desktops: []restoreDesk{},
	}
	for _, c := range l.Containments {
		switch {
		case c.IsPanel:
			data.Panels = append(data.Panels, buildPanel(c))
		case c.Meta[wallpaperPluginKey] != "":
			data.Desktops = append(data.Desktops, buildDesktop(c))
		}
	}
	return data
}

func buildPanel(c layout.Containment) restorePanel {
	loc, ok := panelLocations[c.Meta["location"]]
	if !ok {
		loc = defaultPanelLocation
	}
	p := restorePanel{ID: c.ID, Location: loc, Widgets: []restoreWidget{}}
	for _, a := range c.AppletsInOrder() {
		if a.Plugin == nil {
			continue
		}
		p.Widgets = append(p.Widgets, restoreWidget{
			Plugin: *a.Plugin,
			Config: appletConfigWrites(a.Config),
		})
	}
	return p
}

// appletConfigWrites maps extracted group names back to paths below the
// applet's [Configuration] group, which is the scripting API's root.
func appletConfigWrites(groups map[string]map[string]string) []configWrites {
	out := []configWrites{}
	for _, name := range slices.Sorted(maps.Keys(groups)) {
		group := []string{}
		if name != appletsrc.SegmentConfiguration {
			group = strings.Split(name, "/")
		}
		out = append(out, configWrites{Group: group, Entries: groups[name]})
	}
	return out
}

func buildDesktop(c layout.Containment) restoreDesk {
	plugin := c.Meta[wallpaperPluginKey]
	d := restoreDesk{ID: c.ID, WallpaperPlugin: plugin, Wallpaper: []configWrites{}}
	prefix := wallpaperGroupPrefix + plugin + "/"
	for _, name := range slices.Sorted(maps.Keys(c.Config)) {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		d.Wallpaper = append(d.Wallpaper, configWrites{
			Group:   strings.Split(name, "/"),
			Entries: c.Config[name],
		})
	}
	return d
}

var restoreLayoutTemplate = template.Must(template.New(restoreLayoutJS).Parse(`// Recreates the Plasma layout exported from {{.SourceComment}}.
// Run with: qdbus org.kde.plasmashell /PlasmaShell evaluateScript "$(cat restore-layout.js)"
var layout = {{.Data}};

function applyConfig(target, writes) {
  writes.forEach(function (w) {
    target.currentConfigGroup = w.group;
    Object.keys(w.entries).forEach(function (key) {
      target.writeConfig(key, w.entries[key]);
    });
  });
  target.currentConfigGroup = [];
}

layout.panels.forEach(function (p) {
  var panel = new Panel();
  panel.location = p.location;
  p.widgets.forEach(function (w) {
    var widget = panel.addWidget(w.plugin);
    if (widget) {
      applyConfig(widget, w.config);
    }
  });
});

var existing = desktops();
layout.desktops.forEach(function (d, i) {
  if (i >= existing.length) {
    return;
  }
  var desk = existing[i];
  desk.wallpaperPlugin = d.wallpaperPlugin;
  applyConfig(desk, d.wallpaper);
});
`))

// commentSafe blanks every character JavaScript treats as a line
// terminator, so the source path cannot end the // comment it sits in.
var commentSafe = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\u2028", " ", "\u2029", " ")

func renderRestoreLayout(l *layout.Layout) ([]byte, error) {
	data, err := json.MarshalIndent(buildRestoreData(l), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode restore data: %w", err)
	}
	var buf bytes.Buffer
	err = restoreLayoutTemplate.Execute(&buf, struct {
		SourceComment string
		Data          string
	}{
		SourceComment: commentSafe.Replace(l.SourceFile),
		Data:          string(data),
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", restoreLayoutJS, err)
	}
	return buf.Bytes(), nil
}

type scriptVars struct {
	AppletsrcName string
	KWinRC        string
	KWinRulesRC   string
	LayoutScript  string
}

var portableTemplate = template.Must(template.New(restorePortable).Parse(`#!/usr/bin/env bash
# Installs bundled plasmoids and recreates the panels through plasmashell.
set -euo pipefail

here="$(cd "$(dirname "${BASH_SOURCE[0]}")" && pwd)"
bundle="$(dirname "$here")"
dest="${XDG_DATA_HOME:-$HOME/.local/share}/plasma/plasmoids"

if [ -d "$bundle/plasmoids" ]; then
  mkdir -p "$dest"
  for dir in "$bundle"/plasmoids/*/; do
    [ -d "$dir" ] || continue
    id="$(basename "$dir")"
    rm -rf "${dest:?}/$id"
    cp -a "$dir" "$dest/$id"
    echo "installed plasmoid $id"
  done
fi

qdbus="${QDBUS:-qdbus}"
"$qdbus" org.kde.plasmashell /PlasmaShell evaluateScript "$(cat "$here/{{.LayoutScript}}")"
echo "layout restored"
`))

var snapshotTemplate = template.Must(template.New(restoreSnapshot).Parse(`#!/usr/bin/env bash
# Replaces the current Plasma files with the bundled snapshot and restarts
# plasmashell. Existing files are kept as <name>.bak-<unix time>.
set -euo pipefail

here="$(cd "$(dirname "${BASH_SOURCE[0]}")" && pwd)"
snapshot="$(dirname "$here")/snapshot"
config="${XDG_CONFIG_HOME:-$HOME/.config}"
stamp="$(date +%s)"

if [ ! -d "$snapshot" ]; then
  echo "bundle has no snapshot directory" >&2
  exit 1
fi

for name in {{.AppletsrcName}} {{.KWinRC}} {{.KWinRulesRC}}; do
  [ -f "$snapshot/$name" ] || continue
  if [ -f "$config/$name" ]; then
    cp "$config/$name" "$config/$name.bak-$stamp"
  fi
  cp "$snapshot/$name" "$config/$name"
  echo "restored $name"
done

if command -v kquitapp6 >/dev/null 2>&1; then
  kquitapp6 plasmashell || true
else
  kquitapp5 plasmashell || true
fi
if command -v kstart >/dev/null 2>&1; then
  kstart plasmashell >/dev/null 2>&1 &
else
  kstart5 plasmashell >/dev/null 2>&1 &
fi
`))

func renderScript(t *template.Template) ([]byte, error) {
	var buf bytes.Buffer
	err := t.Execute(&buf, scriptVars{
		AppletsrcName: appletsrc.DefaultFileName,
		KWinRC:        kwinrcName,
		KWinRulesRC:   kwinrulesrcName,
		LayoutScript:  restoreLayoutJS,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}
