package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/offlinefirst/cursorcast/pkg/app"
	"github.com/offlinefirst/cursorcast/pkg/httpapi"
)

// signalContext is swapped in tests.
var signalContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newServeCommand() command {
	return command{
		name:        "serve",
		description: "Run the input listener and the local HTTP command server",
		configure: func(fs *flag.FlagSet) {
			fs.String("addr", "", "Override http.address")
		},
		run: runServe,
	}
}

func runServe(fs *flag.FlagSet, args []string, env *Env, stdout io.Writer, stderr io.Writer) error {
	if env == nil {
		return fmt.Errorf("command environment unavailable")
	}

	address := env.Config.HTTP.Address
	if override := stringFlag(fs, "addr"); override != "" {
		address = override
	}

	a, err := app.New(app.Options{Config: env.Config, Logger: env.Logger})
	if err != nil {
		return err
	}
	defer a.Close()

	runCtx, stop := signalContext()
	defer stop()

	a.Run(runCtx)
	srv := httpapi.NewServer(a, httpapi.Options{
		Address:      address,
		ReadTimeout:  time.Duration(env.Config.HTTP.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(env.Config.HTTP.WriteTimeoutSeconds) * time.Second,
		Logger:       env.Logger.With("component", "http"),
	})

	fmt.Fprintf(stdout, "%s listening on %s (listener: %s)\n", titleStyle.Render(binaryName), address, env.Config.Listener.Source)
	if err := srv.Start(runCtx); err != nil {
		return err
	}
	env.Logger.Info("server stopped", "address", address)
	return nil
}

func stringFlag(fs *flag.FlagSet, name string) string {
	f := fs.Lookup(name)
	if f == nil {
		return ""
	}
	return f.Value.String()
}

func boolFlag(fs *flag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	if f == nil {
		return false
	}
	value, err := strconv.ParseBool(f.Value.String())
	if err != nil {
		return false
	}
	return value
}
