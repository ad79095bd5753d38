// Package state shares the most recent scan between the source watcher and
// the viewer.
//
// The watcher is the single writer; the viewer reads a Snapshot on every
// tick. A failed rescan records the error and keeps the previous layout, so
// the viewer keeps showing the last good data alongside the failure:
//
//	// Success: replace the layout
//	store.Update(layout, nil)
//	→ snapshot.Layout = layout
//	→ snapshot.LastError = nil
//	→ snapshot.Generation++
//
//	// Failure: keep the layout, record the error
//	store.Update(nil, err)
//	→ snapshot.Layout = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Layouts are never mutated after publication, so Snapshot hands out the
// shared pointer instead of a deep copy. The zero Store is ready to use.
package state
