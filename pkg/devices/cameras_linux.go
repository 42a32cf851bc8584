//go:build linux

package devices

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// videoRoot and sysRoot are declared for swapping in tests.
var (
	videoRoot = "/dev"
	sysRoot   = "/sys/class/video4linux"
)

func nativeCameras() ([]Camera, error) {
	nodes, err := filepath.Glob(filepath.Join(videoRoot, "video*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(nodes)

	cameras := make([]Camera, 0, len(nodes))
	for _, node := range nodes {
		base := filepath.Base(node)
		name := base
		if raw, err := os.ReadFile(filepath.Join(sysRoot, base, "name")); err == nil {
			if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
				name = trimmed
			}
		}
		cameras = append(cameras, Camera{ID: base, Name: name})
	}
	return cameras, nil
}
