package layout

import (
	"cmp"
	"slices"
)

// AppletsInOrder returns the containment's applets in display order.
//
// Applets named by AppletOrder come first, in listed order; ids with no
// matching applet are skipped and repeated ids are emitted once. Every
// remaining applet follows in ascending id order. Without an order list the
// result is simply ascending by id. The result always contains each applet
// exactly once.
func (c Containment) AppletsInOrder() []Applet {
	byID := make(map[uint32]int, len(c.Applets))
	for i, a := range c.Applets {
		byID[a.ID] = i
	}

	out := make([]Applet, 0, len(c.Applets))
	placed := make(map[uint32]bool, len(c.Applets))
	for _, id := range c.AppletOrder {
		i, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		out = append(out, c.Applets[i])
		placed[id] = true
	}

	rest := make([]Applet, 0, len(c.Applets)-len(out))
	for _, a := range c.Applets {
		if !placed[a.ID] {
			rest = append(rest, a)
		}
	}
	slices.SortStableFunc(rest, func(a, b Applet) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return append(out, rest...)
}

// AppletIDsInOrder is AppletsInOrder reduced to ids.
func (c Containment) AppletIDsInOrder() []uint32 {
	applets := c.AppletsInOrder()
	ids := make([]uint32, len(applets))
	for i, a := range applets {
		ids[i] = a.ID
	}
	return ids
}
