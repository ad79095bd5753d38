package appletsrc

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/five82/copycat/internal/layout"
)

// Well-known segments and keys of the appletsrc format.
const (
	SegmentContainments  = "Containments"
	SegmentApplets       = "Applets"
	SegmentConfiguration = "Configuration"

	KeyPlugin      = "plugin"
	KeyAppletOrder = "AppletOrder"
)

// containmentEntry and appletEntry collect everything the tree holds for one
// id while sections are walked once.
type containmentEntry struct {
	meta    map[string]string
	config  map[string]map[string]string
	applets map[uint32]*appletEntry
}

type appletEntry struct {
	meta   map[string]string
	config map[string]map[string]string
}

// Extract derives the containments described by tree, ordered by id.
//
// A containment exists when any path [Containments][<id>]... names it, and
// an applet when any path [Containments][<id>][Applets][<aid>]... names it,
// even if neither has metadata of its own. Ids are compared numerically, so
// "3" and "03" refer to the same entity.
func Extract(tree *Tree) []layout.Containment {
	index := make(map[uint32]*containmentEntry)

	for _, sec := range tree.Sections() {
		p := sec.Path
		if len(p) < 2 || p[0] != SegmentContainments {
			continue
		}
		cid, ok := parseID(p[1])
		if !ok {
			continue
		}
		ce := index[cid]
		if ce == nil {
			ce = &containmentEntry{
				meta:    make(map[string]string),
				config:  make(map[string]map[string]string),
				applets: make(map[uint32]*appletEntry),
			}
			index[cid] = ce
		}

		switch {
		case len(p) == 2:
			maps.Copy(ce.meta, sec.Values)
		case p[2] != SegmentApplets:
			ce.config[strings.Join(p[2:], "/")] = maps.Clone(sec.Values)
		case len(p) >= 4:
			aid, ok := parseID(p[3])
			if !ok {
				continue
			}
			ae := ce.applets[aid]
			if ae == nil {
				ae = &appletEntry{
					meta:   make(map[string]string),
					config: make(map[string]map[string]string),
				}
				ce.applets[aid] = ae
			}
			addAppletSection(ae, p, sec.Values)
		}
	}

	ids := slices.Sorted(maps.Keys(index))
	out := make([]layout.Containment, 0, len(ids))
	for _, cid := range ids {
		out = append(out, buildContainment(cid, index[cid]))
	}
	return out
}

// addAppletSection files a section under [Containments][c][Applets][a] as
// either applet metadata or a configuration group.
func addAppletSection(ae *appletEntry, p Path, values map[string]string) {
	switch {
	case len(p) == 4:
		maps.Copy(ae.meta, values)
	case p[4] != SegmentConfiguration:
		// Other applet subgroups are not part of the model.
	case len(p) == 5:
		ae.config[SegmentConfiguration] = maps.Clone(values)
	default:
		ae.config[strings.Join(p[5:], "/")] = maps.Clone(values)
	}
}

func buildContainment(id uint32, ce *containmentEntry) layout.Containment {
	plugin := pluginOf(ce.meta)
	c := layout.Containment{
		ID:          id,
		Plugin:      plugin,
		IsPanel:     plugin != nil && *plugin == layout.PanelPlugin,
		Meta:        ce.meta,
		AppletOrder: ParseAppletOrder(ce.meta[KeyAppletOrder]),
		Applets:     make([]layout.Applet, 0, len(ce.applets)),
	}
	if len(ce.config) > 0 {
		c.Config = ce.config
	}

	for _, aid := range slices.Sorted(maps.Keys(ce.applets)) {
		ae := ce.applets[aid]
		c.Applets = append(c.Applets, layout.Applet{
			ID:     aid,
			Plugin: pluginOf(ae.meta),
			Meta:   ae.meta,
			Config: ae.config,
		})
	}
	return c
}

func pluginOf(meta map[string]string) *string {
	v, ok := meta[KeyPlugin]
	if !ok {
		return nil
	}
	return &v
}

// ParseAppletOrder parses an AppletOrder value such as "546;552;551".
// Empty and non-numeric pieces are dropped; nil is returned when no id
// remains, so an empty list means the same as no list.
func ParseAppletOrder(value string) []uint32 {
	var out []uint32
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, ok := parseID(part); ok {
			out = append(out, id)
		}
	}
	return out
}

func parseID(seg string) (uint32, bool) {
	n, err := strconv.ParseUint(seg, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
