//go:build !linux

package devices

// TODO: enumerate AVFoundation devices on darwin (Continuity Cameras show up
// in AVCaptureDevice discovery sessions).
func nativeCameras() ([]Camera, error) {
	return staticCameras(), nil
}
