package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (k keyMap) sections() []helpSection {
	return []helpSection{
		{"Tabs", []key.Binding{k.NextTab, k.PrevTab}},
		{"Navigation", []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp}},
		{"General", []key.Binding{k.CycleTheme, k.Help, k.Quit}},
	}
}

// helpContent renders the key reference used by the Help tab and overlay.
func helpContent(k keyMap, width int, styles Styles) string {
	const keyWidth = 12
	var lines []string
	for i, section := range k.sections() {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.AccentText.Bold(true).Render(fit(section.title, width)))
		for _, b := range section.bindings {
			h := b.Help()
			lines = append(lines, styles.WarningKey.Render(fill(h.Key, keyWidth))+
				styles.Text.Render(fit(h.Desc, width-keyWidth)))
		}
	}
	return strings.Join(lines, "\n")
}

// renderHelpOverlay renders the help modal centred over the screen.
func (m Model) renderHelpOverlay() string {
	styles := m.theme.Styles()
	const modalWidth = 40

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(helpContent(m.keys, modalWidth-6, styles))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
