package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/offlinefirst/cursorcast/internal/buildinfo"
	"github.com/offlinefirst/cursorcast/pkg/app"
	"github.com/offlinefirst/cursorcast/pkg/mcphost"
)

// mcpInput is swapped in tests.
var mcpInput io.Reader = os.Stdin

func newMCPCommand() command {
	return command{
		name:        "mcp",
		description: "Serve the recording commands as MCP tools over stdio",
		run:         runMCP,
	}
}

func runMCP(fs *flag.FlagSet, args []string, env *Env, stdout io.Writer, stderr io.Writer) error {
	if env == nil {
		return fmt.Errorf("command environment unavailable")
	}

	a, err := app.New(app.Options{Config: env.Config, Logger: env.Logger})
	if err != nil {
		return err
	}
	defer a.Close()

	runCtx, stop := signalContext()
	defer stop()

	a.Run(runCtx)
	host := mcphost.New(a, mcphost.Options{
		Name:    binaryName,
		Version: buildinfo.Version(),
		Logger:  env.Logger.With("component", "mcp"),
	})
	env.Logger.Info("mcp host ready", "listener", env.Config.Listener.Source)
	return host.Serve(runCtx, mcpInput, stdout)
}
