package devices

import "context"

// StaticProvider returns fixed stand-in descriptors.
type StaticProvider struct{}

// Cameras returns the built-in camera and a Continuity Camera.
func (StaticProvider) Cameras(ctx context.Context) ([]Camera, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return staticCameras(), nil
}

// Screens returns the main display.
func (StaticProvider) Screens(ctx context.Context) ([]Screen, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return staticScreens(), nil
}

func staticCameras() []Camera {
	return []Camera{
		{
			ID:         "built_in",
			Name:       "FaceTime HD Camera",
			Resolution: &Resolution{Width: 1280, Height: 720},
		},
		{
			ID:           "iphone_continuity",
			Name:         "iPhone 15 Pro Camera (Continuity)",
			IsContinuity: true,
			Resolution:   &Resolution{Width: 1920, Height: 1080},
		},
	}
}

func staticScreens() []Screen {
	return []Screen{
		{ID: "main_display", Name: "Main Display", DisplayID: 1},
	}
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
