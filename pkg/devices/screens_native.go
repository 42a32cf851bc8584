//go:build cgo || !darwin

package devices

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

func nativeScreens() ([]Screen, error) {
	count := screenshot.NumActiveDisplays()
	if count <= 0 {
		return nil, ErrNoDisplays
	}
	screens := make([]Screen, 0, count)
	for i := 0; i < count; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		screens = append(screens, describeDisplay(i, bounds.Dx(), bounds.Dy()))
	}
	return screens, nil
}

func describeDisplay(index, width, height int) Screen {
	screen := Screen{
		ID:        fmt.Sprintf("display_%d", index+1),
		Name:      fmt.Sprintf("Display %d (%dx%d)", index+1, width, height),
		DisplayID: uint32(index + 1),
	}
	if index == 0 {
		screen.ID = "main_display"
		screen.Name = fmt.Sprintf("Main Display (%dx%d)", width, height)
	}
	return screen
}
