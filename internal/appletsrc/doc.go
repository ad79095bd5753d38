// Package appletsrc parses Plasma's plasma-org.kde.plasma.desktop-appletsrc
// file into the typed layout model.
//
// # File Format
//
// appletsrc looks like an INI file, but a section header is a path made of
// adjacent bracket groups rather than a single name:
//
//	[Containments][12]
//	plugin=org.kde.panel
//	location=4
//	AppletOrder=546;551;552
//
//	[Containments][12][Applets][546]
//	plugin=org.kde.plasma.kickoff
//
//	[Containments][12][Applets][546][Configuration][General]
//	favoritesPortedToKAstats=true
//
// Comment lines start with '#' or ';'. A key/value line splits on its first
// '=' and both sides are trimmed.
//
// # Pipeline
//
// Parsing runs in three steps over data held fully in memory:
//
//  1. ParseHeader turns one header line into a Path.
//  2. BuildTree walks the lines once and records key/value pairs under the
//     current Path, producing a Tree (path -> key/value map).
//  3. Extract walks the Tree once, groups sections by containment and applet
//     id, and builds []layout.Containment in ascending id order.
//
// Display order of widgets is resolved on demand by
// layout.Containment.AppletsInOrder.
//
// # Recognized Paths
//
//	[Containments][<id>]                                   containment metadata
//	[Containments][<id>][<group>...]                       containment config group
//	[Containments][<id>][Applets][<aid>]                   applet metadata
//	[Containments][<id>][Applets][<aid>][Configuration]    config group "Configuration"
//	[Containments][<id>][Applets][<aid>][Configuration][<rest>...]
//	                                                       config group "<rest>" joined by '/'
//
// Everything else in the file is ignored.
//
// # Error Handling
//
// Only two failures stop a parse: an unreadable file (the *fs.PathError is
// wrapped) and a malformed header such as "[Containments][3", reported as
// *HeaderError with the 1-based line number. Duplicate keys keep the last
// value; unknown lines are skipped.
package appletsrc
