package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/five82/copycat/internal/config"
)

// Subcommand names.
const (
	CmdScan   = "scan"
	CmdTUI    = "tui"
	CmdExport = "export"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Command is a parsed invocation.
type Command struct {
	Name       string
	ConfigPath string // empty uses the default location
	LogLevel   string
	LogFormat  string

	Appletsrc   string
	KWinRC      string
	KWinRulesRC string

	OutDir          string
	Snapshot        *bool
	BundlePlasmoids *bool
}

const usageText = `
copycat - inspect and export a KDE Plasma desktop layout.

Usage:
  copycat [global options] <command> [options]

Commands:
  scan     print the parsed layout as JSON
  tui      browse the layout in a terminal viewer
  export   write a restore bundle

Global options:
`

// Parse processes command-line arguments. It returns the Command, a boolean
// indicating the program should exit cleanly (help was printed), or an
// *ExitError.
func Parse(args []string, output io.Writer) (*Command, bool, error) {
	global := flag.NewFlagSet("copycat", flag.ContinueOnError)
	global.SetOutput(output)
	global.Usage = func() {
		fmt.Fprint(output, usageText)
		global.PrintDefaults()
		fmt.Fprint(output, "\nRun 'copycat <command> -h' for command options.\n")
	}

	cmd := &Command{}
	global.StringVar(&cmd.ConfigPath, "config", "", "Path to the TOML config file.")
	global.StringVar(&cmd.LogLevel, "log-level", "", "Logging level: debug, info, warn or error.")
	global.StringVar(&cmd.LogFormat, "log-format", "", "Log output format: text or json.")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%v", err)
	}
	if err := validateLogFlags(cmd); err != nil {
		return nil, false, err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return nil, false, usageError("missing command")
	}
	cmd.Name = rest[0]

	sub, err := subcommandFlags(cmd, output)
	if err != nil {
		return nil, false, err
	}
	if err := sub.Parse(rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%v", err)
	}
	if sub.NArg() > 0 {
		return nil, false, usageError("%s: unexpected argument %q", cmd.Name, sub.Arg(0))
	}

	sub.Visit(func(f *flag.Flag) {
		v := f.Value.String() == "true"
		switch f.Name {
		case "snapshot":
			cmd.Snapshot = &v
		case "bundle-plasmoids":
			cmd.BundlePlasmoids = &v
		}
	})
	return cmd, false, nil
}

func subcommandFlags(cmd *Command, output io.Writer) (*flag.FlagSet, error) {
	switch cmd.Name {
	case CmdScan, CmdTUI, CmdExport:
	default:
		return nil, usageError("unknown command %q", cmd.Name)
	}

	fs := flag.NewFlagSet("copycat "+cmd.Name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cmd.Appletsrc, "file", "", "Path to plasma-org.kde.plasma.desktop-appletsrc.")
	fs.StringVar(&cmd.KWinRC, "kwinrc", "", "Path to kwinrc.")
	fs.StringVar(&cmd.KWinRulesRC, "kwinrules", "", "Path to kwinrulesrc.")

	if cmd.Name == CmdExport {
		fs.StringVar(&cmd.OutDir, "out", "", "Directory the bundle is created in.")
		// Values are read back through Visit so unset flags keep the config.
		fs.Bool("snapshot", true, "Copy the source files into the bundle.")
		fs.Bool("bundle-plasmoids", true, "Copy user-installed plasmoids into the bundle.")
	}
	return fs, nil
}

func validateLogFlags(cmd *Command) error {
	cmd.LogLevel = strings.ToLower(cmd.LogLevel)
	switch cmd.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	cmd.LogFormat = strings.ToLower(cmd.LogFormat)
	switch cmd.LogFormat {
	case "", "text", "json":
	default:
		return usageError("invalid log-format: must be 'text' or 'json'")
	}
	return nil
}

// Apply overrides cfg with every flag the user set. Paths are expanded the
// same way the config file's are.
func (c *Command) Apply(cfg *config.Config) error {
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}

	paths := []struct {
		flag string
		dst  *string
	}{
		{c.Appletsrc, &cfg.Appletsrc},
		{c.KWinRC, &cfg.KWinRC},
		{c.KWinRulesRC, &cfg.KWinRulesRC},
		{c.OutDir, &cfg.Export.OutDir},
	}
	for _, p := range paths {
		if p.flag == "" {
			continue
		}
		expanded, err := config.ExpandPath(p.flag)
		if err != nil {
			return fmt.Errorf("expand %s: %w", p.flag, err)
		}
		*p.dst = expanded
	}

	if c.Snapshot != nil {
		cfg.Export.Snapshot = *c.Snapshot
	}
	if c.BundlePlasmoids != nil {
		cfg.Export.BundlePlasmoids = *c.BundlePlasmoids
	}
	return nil
}
