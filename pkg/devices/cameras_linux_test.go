//go:build linux

package devices

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNativeCamerasReadsVideo4Linux(t *testing.T) {
	dev := t.TempDir()
	sys := t.TempDir()
	for _, name := range []string{"video0", "video2"} {
		if err := os.WriteFile(filepath.Join(dev, name), nil, 0o644); err != nil {
			t.Fatalf("write node: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(sys, "video0"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sys, "video0", "name"), []byte("Integrated Webcam\n"), 0o644); err != nil {
		t.Fatalf("write name: %v", err)
	}

	origDev, origSys := videoRoot, sysRoot
	videoRoot, sysRoot = dev, sys
	defer func() { videoRoot, sysRoot = origDev, origSys }()

	cameras, err := nativeCameras()
	if err != nil {
		t.Fatalf("native cameras: %v", err)
	}
	if len(cameras) != 2 {
		t.Fatalf("expected two cameras, got %d", len(cameras))
	}
	if cameras[0].ID != "video0" || cameras[0].Name != "Integrated Webcam" {
		t.Fatalf("unexpected first camera: %+v", cameras[0])
	}
	if cameras[1].Name != "video2" {
		t.Fatalf("expected fallback name, got %+v", cameras[1])
	}
}
