package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func (m Model) bodyHeight() int {
	return max(m.height-chromeHeight, 3)
}

func (m Model) listWidth() int {
	return min(max(m.width/3, listMinWidth), listMaxWidth)
}

// resize fits the viewports to the current window.
func (m *Model) resize() {
	inner := m.bodyHeight() - 2
	m.detail.Width = max(m.width-m.listWidth()-2, 1)
	m.detail.Height = max(inner, 1)
	m.page.Width = max(m.width-2, 1)
	m.page.Height = max(inner, 1)
	m.help.Width = m.width
}

// refreshContent re-renders the viewport contents. resetScroll moves both
// viewports back to the top, used when the selection or tab changes.
func (m *Model) refreshContent(resetScroll bool) {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()

	if c, ok := m.selectedContainment(); ok {
		m.detail.SetContent(containmentDetail(c, m.detail.Width, styles))
	} else {
		m.detail.SetContent(styles.MutedText.Render(fit(m.emptyMessage(), m.detail.Width)))
	}

	switch m.tab {
	case TabKWin:
		m.page.SetContent(kwinContent(m.snapshot.Layout, m.page.Width, styles))
	case TabHelp:
		m.page.SetContent(helpContent(m.keys, m.page.Width, styles))
	}

	if resetScroll {
		m.detail.GotoTop()
		m.page.GotoTop()
	}
}

func (m Model) emptyMessage() string {
	if m.snapshot.Layout == nil {
		return "Waiting for the first scan..."
	}
	return "No containments in this file."
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	parts := []string{styles.Logo.Render("copycat")}

	if l := m.snapshot.Layout; l != nil {
		summary := fmt.Sprintf("%s  %d containments  %d panels  %d widgets",
			l.SourceFile, len(l.Containments), len(l.Panels()), l.AppletCount())
		room := m.width - lipgloss.Width(parts[0]) - 3
		parts = append(parts, styles.Text.Render(fit(summary, room)))
	} else {
		parts = append(parts, styles.MutedText.Render("no layout loaded"))
	}
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(strings.Join(parts, " "))
}

func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = styles.TabActive.Render(name)
		} else {
			tabs[i] = styles.TabIdle.Render(name)
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderBody() string {
	h := m.bodyHeight()
	switch m.tab {
	case TabPlasma:
		lw := m.listWidth()
		list := m.renderTitledBox("Containments", m.containmentList(lw-2, h-2), lw, h, false)
		title := "Detail"
		if c, ok := m.selectedContainment(); ok {
			title = fmt.Sprintf("Containment %d", c.ID)
		}
		detail := m.renderTitledBox(title, m.detail.View(), m.width-lw, h, true)
		return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	case TabKWin:
		return m.renderTitledBox("KWin", m.page.View(), m.width, h, true)
	default:
		return m.renderTitledBox("Help", m.page.View(), m.width, h, true)
	}
}

// renderFooter shows the last reload error when there is one, otherwise the
// short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	var right string
	if !m.snapshot.LastUpdated.IsZero() {
		right = "updated " + m.snapshot.LastUpdated.Format("15:04:05")
	}
	room := max(m.width-runewidth.StringWidth(right)-3, 0)

	var left string
	if err := m.snapshot.LastError; err != nil {
		left = styles.DangerText.Render(fit("reload failed: "+err.Error(), room))
	} else {
		h := m.help
		h.Width = room
		h.Styles.ShortKey = styles.WarningKey
		h.Styles.ShortDesc = styles.MutedText
		h.Styles.ShortSeparator = styles.FaintText
		left = h.View(m.keys)
	}

	gap := max(m.width-lipgloss.Width(left)-runewidth.StringWidth(right)-2, 1)
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
