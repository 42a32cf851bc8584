// Package devices enumerates capture sources: cameras and screens.
//
// Two providers exist. The static provider returns fixed descriptors and is
// what the command surface uses until native enumeration is trusted on every
// platform; the native provider asks the OS.
package devices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Provider names accepted by NewProvider.
const (
	ProviderStatic = "static"
	ProviderNative = "native"
)

// ErrNoDisplays is returned when the OS reports no active displays.
var ErrNoDisplays = errors.New("no active displays")

// Resolution is a width/height pair encoded as a two-element JSON array.
type Resolution struct {
	Width  uint32
	Height uint32
}

// MarshalJSON encodes the resolution as [width, height].
func (r Resolution) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint32{r.Width, r.Height})
}

// UnmarshalJSON decodes a [width, height] array.
func (r *Resolution) UnmarshalJSON(data []byte) error {
	var pair [2]uint32
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode resolution: %w", err)
	}
	r.Width, r.Height = pair[0], pair[1]
	return nil
}

// Camera describes a video capture device.
type Camera struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	IsContinuity bool        `json:"is_continuity"`
	Resolution   *Resolution `json:"resolution"`
}

// Screen describes a display or window that can be recorded.
type Screen struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	DisplayID uint32 `json:"display_id"`
	IsWindow  bool   `json:"is_window"`
}

// Provider enumerates devices on demand.
type Provider interface {
	Cameras(ctx context.Context) ([]Camera, error)
	Screens(ctx context.Context) ([]Screen, error)
}

// NewProvider resolves a provider by name.
func NewProvider(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderStatic:
		return StaticProvider{}, nil
	case ProviderNative:
		return NativeProvider{}, nil
	default:
		return nil, fmt.Errorf("unsupported device provider %q", name)
	}
}
