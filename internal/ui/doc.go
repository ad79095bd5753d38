// Package ui is copycat's terminal viewer, built on Bubble Tea.
//
// # Tabs
//
//   - Plasma: containment list on the left, details of the selected
//     containment on the right (metadata, AppletOrder, widgets in display
//     order with their config groups, containment config groups)
//   - KWin: the kwinrc/kwinrulesrc summary
//   - Help: key reference
//
// # Data
//
// The model never reads files. It polls state.Store on a tick and renders
// whatever the source watcher published last. A failed reload leaves the
// previous layout on screen and shows the error in the footer.
//
// # Keys
//
//	tab / shift+tab   switch tabs
//	j/k, up/down      move selection (Plasma) or scroll (KWin, Help)
//	g / G             first / last
//	ctrl+d / ctrl+u   scroll the detail pane
//	T                 cycle theme, saved to prefs.toml
//	?                 help overlay
//	q, esc, ctrl+c    quit
package ui
