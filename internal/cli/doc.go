// Package cli turns command-line arguments into a Command.
//
// Usage errors are returned as *ExitError with code 2 so main can print the
// message and exit without touching the config or the filesystem. Flags that
// were not given leave the configured value alone; Apply copies only the
// ones the user set onto a config.Config.
package cli
