package cmd

import (
	"flag"
	"fmt"
	"io"

	"github.com/offlinefirst/cursorcast/pkg/input"
	"github.com/offlinefirst/cursorcast/pkg/permissions"
)

// probeReport is swapped in tests.
var probeReport = func() permissions.Report { return permissions.Probe(nil) }

func newDoctorCommand() command {
	return command{
		name:        "doctor",
		description: "Report permission state and input listener support",
		run:         runDoctor,
	}
}

func runDoctor(fs *flag.FlagSet, args []string, env *Env, stdout io.Writer, stderr io.Writer) error {
	if env == nil {
		return fmt.Errorf("command environment unavailable")
	}

	report := probeReport()
	fmt.Fprintln(stdout, titleStyle.Render("Permissions"))
	printProbe(stdout, "accessibility", report.Accessibility)
	printProbe(stdout, "screen_recording", report.ScreenRecording)
	printProbe(stdout, "camera", report.Camera)
	printProbe(stdout, "microphone", report.Microphone)

	hook := input.DetectEnvironment(env.Config.Listener.Source)
	availability := "available"
	if !hook.Available {
		availability = "unavailable"
	}
	fmt.Fprintln(stdout, titleStyle.Render("Input listener"))
	fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("provider"), hook.Provider)
	fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("status"), statusBadge(availability))
	fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("permission"), statusBadge(hook.Permission))
	if hook.Message != "" {
		fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("message"), hook.Message)
	}
	if hook.Guidance != "" {
		fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("guidance"), dimStyle.Render(hook.Guidance))
	}

	env.Logger.Debug("doctor finished", "listener_provider", hook.Provider, "listener_available", hook.Available)
	return nil
}

func printProbe(w io.Writer, name string, probe permissions.ProbeResult) {
	fmt.Fprintf(w, "  %s %s", labelStyle.Render(name), statusBadge(probe.StatusString()))
	if probe.Message != "" {
		fmt.Fprintf(w, " %s", dimStyle.Render(probe.Message))
	}
	fmt.Fprintln(w)
	if probe.Guidance != "" {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render(""), dimStyle.Render(probe.Guidance))
	}
}
