package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/offlinefirst/cursorcast/internal/buildinfo"
	"github.com/offlinefirst/cursorcast/pkg/config"
	"github.com/offlinefirst/cursorcast/pkg/logging"
)

const binaryName = "cursorcast"

// ErrUnknownCommand is returned when the first argument names no subcommand.
var ErrUnknownCommand = errors.New("unknown command")

type runFunc func(fs *flag.FlagSet, args []string, env *Env, stdout io.Writer, stderr io.Writer) error

type command struct {
	name        string
	description string
	configure   func(fs *flag.FlagSet)
	run         runFunc
	// standalone commands run without loading config or building a logger.
	standalone bool
}

// Env carries the resolved configuration and logger into a subcommand.
type Env struct {
	Config config.Config
	Logger *slog.Logger
}

type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func (g *globalFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "Path to config file (default: ./"+config.DefaultFileName+" if present)")
	fs.StringVar(&g.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")
	fs.StringVar(&g.logFormat, "log-format", "", "Override logging.format (json, console)")
}

// RootCommand parses global flags and dispatches to subcommands.
type RootCommand struct {
	commands []command
	flags    globalFlags
	stdout   io.Writer
	stderr   io.Writer
}

// NewRootCommand returns the cursorcast CLI writing to the process streams.
func NewRootCommand() *RootCommand {
	return &RootCommand{
		commands: []command{
			newServeCommand(),
			newMCPCommand(),
			newDevicesCommand(),
			newDoctorCommand(),
			newVersionCommand(),
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (rc *RootCommand) lookup(name string) (command, bool) {
	for _, cmd := range rc.commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

// Execute parses global flags from args and runs the named subcommand.
func (rc *RootCommand) Execute(args []string) error {
	root := flag.NewFlagSet(binaryName, flag.ContinueOnError)
	root.SetOutput(rc.stderr)
	root.Usage = func() { rc.usage(root) }
	rc.flags.bind(root)

	if err := root.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if root.NArg() == 0 {
		rc.usage(root)
		return nil
	}

	cmd, ok := rc.lookup(root.Arg(0))
	if !ok {
		fmt.Fprintf(rc.stderr, "%s %q\n\n", errorStyle.Render("unknown command"), root.Arg(0))
		rc.usage(root)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, root.Arg(0))
	}

	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(rc.stderr)
	fs.Usage = func() {
		fmt.Fprintf(rc.stdout, "Usage: %s %s [flags]\n%s\n", binaryName, cmd.name, cmd.description)
		fs.SetOutput(rc.stdout)
		fs.PrintDefaults()
	}
	if cmd.configure != nil {
		cmd.configure(fs)
	}
	if err := fs.Parse(root.Args()[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	var env *Env
	if !cmd.standalone {
		var err error
		if env, err = rc.flags.load(rc.stderr); err != nil {
			return err
		}
	}
	return cmd.run(fs, fs.Args(), env, rc.stdout, rc.stderr)
}

// load reads the config file, applies flag overrides and builds the logger.
func (g globalFlags) load(logOutput io.Writer) (*Env, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.logLevel != "" {
		if cfg.Logging.Level, err = config.NormalizeLogLevel(g.logLevel); err != nil {
			return nil, err
		}
	}
	if g.logFormat != "" {
		if cfg.Logging.Format, err = config.NormalizeFormat(g.logFormat); err != nil {
			return nil, err
		}
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOutput,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("configuration loaded", "source", cfg.Source, "listener_source", cfg.Listener.Source, "devices_provider", cfg.Devices.Provider)
	return &Env{Config: cfg, Logger: logger}, nil
}

func (rc *RootCommand) usage(root *flag.FlagSet) {
	fmt.Fprintf(rc.stdout, "%s %s\n\n", titleStyle.Render(binaryName), dimStyle.Render(versionString()))
	fmt.Fprintf(rc.stdout, "Usage: %s [global flags] <command> [command flags]\n\n", binaryName)
	fmt.Fprintln(rc.stdout, titleStyle.Render("Commands"))
	for _, cmd := range rc.commands {
		fmt.Fprintf(rc.stdout, "  %-10s %s\n", cmd.name, cmd.description)
	}
	fmt.Fprintln(rc.stdout)
	fmt.Fprintln(rc.stdout, titleStyle.Render("Global flags"))
	root.SetOutput(rc.stdout)
	root.PrintDefaults()
	root.SetOutput(rc.stderr)
}

func newVersionCommand() command {
	return command{
		name:        "version",
		description: "Print the version, revision and Go runtime",
		standalone:  true,
		run: func(fs *flag.FlagSet, args []string, env *Env, stdout io.Writer, stderr io.Writer) error {
			_, err := fmt.Fprintln(stdout, versionString())
			return err
		},
	}
}

func versionString() string {
	version := buildinfo.Version()
	if rev := buildinfo.Revision(); rev != "" {
		version += "+" + rev
	}
	return fmt.Sprintf("%s (%s/%s)", version, runtimeVersion(), runtimeGOOS())
}

// Swapped in tests.
var (
	runtimeVersion = runtime.Version
	runtimeGOOS    = func() string { return runtime.GOOS }
)
