// Package config loads copycat's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/copycat/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	appletsrc   = "~/.config/plasma-org.kde.plasma.desktop-appletsrc"
//	kwinrc      = "~/.config/kwinrc"
//	kwinrulesrc = "~/.config/kwinrulesrc"
//
//	[export]
//	out_dir          = "."
//	snapshot         = true
//	bundle_plasmoids = true
//	plasmoid_dirs    = ["~/.local/share/plasma/plasmoids"]
//
//	[log]
//	level  = "info"   # debug, info, warn, error
//	format = "text"   # text or json
//	file   = ""       # used by the viewer; empty discards viewer logs
//
//	[viewer]
//	refresh_seconds = 2
//
// Every field is optional. Path fields get tilde expansion and are made
// absolute, so relative paths resolve against the working directory.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, prefixed with "parse config"
//
// Values are not validated here; the CLI rejects an unknown log level or
// format when it builds the logger.
package config
