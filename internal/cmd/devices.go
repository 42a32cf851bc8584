package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/offlinefirst/cursorcast/pkg/devices"
)

func newDevicesCommand() command {
	return command{
		name:        "devices",
		description: "List cameras and screens available for recording",
		configure: func(fs *flag.FlagSet) {
			fs.String("provider", "", "Override devices.provider (static, native)")
			fs.Bool("json", false, "Print machine-readable JSON")
		},
		run: runDevices,
	}
}

func runDevices(fs *flag.FlagSet, args []string, env *Env, stdout io.Writer, stderr io.Writer) error {
	if env == nil {
		return fmt.Errorf("command environment unavailable")
	}

	name := env.Config.Devices.Provider
	if override := stringFlag(fs, "provider"); override != "" {
		name = override
	}
	provider, err := devices.NewProvider(name)
	if err != nil {
		return err
	}

	background := context.Background()
	cameras, err := provider.Cameras(background)
	if err != nil {
		return fmt.Errorf("list cameras: %w", err)
	}
	screens, err := provider.Screens(background)
	if err != nil {
		return fmt.Errorf("list screens: %w", err)
	}

	if boolFlag(fs, "json") {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Cameras []devices.Camera `json:"cameras"`
			Screens []devices.Screen `json:"screens"`
		}{cameras, screens})
	}

	fmt.Fprintln(stdout, titleStyle.Render(fmt.Sprintf("Cameras (%s)", name)))
	if len(cameras) == 0 {
		fmt.Fprintln(stdout, dimStyle.Render("  none"))
	}
	for _, cam := range cameras {
		line := fmt.Sprintf("  %s %s", labelStyle.Render(cam.ID), cam.Name)
		if cam.Resolution != nil {
			line += dimStyle.Render(fmt.Sprintf(" %dx%d", cam.Resolution.Width, cam.Resolution.Height))
		}
		if cam.IsContinuity {
			line += " " + warnStyle.Render("continuity")
		}
		fmt.Fprintln(stdout, line)
	}

	fmt.Fprintln(stdout, titleStyle.Render(fmt.Sprintf("Screens (%s)", name)))
	if len(screens) == 0 {
		fmt.Fprintln(stdout, dimStyle.Render("  none"))
	}
	for _, screen := range screens {
		kind := "display"
		if screen.IsWindow {
			kind = "window"
		}
		fmt.Fprintf(stdout, "  %s %s %s\n", labelStyle.Render(screen.ID), screen.Name, dimStyle.Render(fmt.Sprintf("%s %d", kind, screen.DisplayID)))
	}
	return nil
}
