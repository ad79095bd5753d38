// Package app is copycat's composition root. It turns resolved settings
// into a scan, a bundle export or a running viewer.
//
// # Components
//
//   - app.go: Scan, Export and RunViewer
//   - poller.go: Watcher, the source watcher that rescans on change
//   - logger.go: slog construction from level/format names
//
// # Data Flow
//
//	Scan()
//	  ├─ appletsrc.ParseFile()   span scan.appletsrc
//	  └─ kwin.Scan()             span scan.kwin, only when kwinrc exists
//
//	Export()
//	  ├─ Scan()
//	  └─ bundle.Export()         span export.bundle
//
//	RunViewer()
//	  ├─ Watcher.Poll()          initial scan into state.Store
//	  ├─ go Watcher.Run()        stat sources every tick, rescan on change
//	  └─ ui.Run()                blocks until quit
//
// # Watcher
//
// The watcher compares size and modification time of the appletsrc, kwinrc
// and kwinrulesrc on every tick. Appearance or removal of a file also counts
// as a change. A failed rescan is stored as the snapshot error; the previous
// layout stays visible.
package app
