package devices

import "context"

// NativeProvider queries the operating system. Screens come from the
// display server; cameras come from video4linux on Linux and fall back to
// the static descriptors elsewhere.
type NativeProvider struct{}

// Cameras enumerates capture devices.
func (NativeProvider) Cameras(ctx context.Context) ([]Camera, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return nativeCameras()
}

// Screens enumerates active displays.
func (NativeProvider) Screens(ctx context.Context) ([]Screen, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return nativeScreens()
}
