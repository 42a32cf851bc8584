package devices

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStaticProviderDescriptors(t *testing.T) {
	p := StaticProvider{}
	cameras, err := p.Cameras(context.Background())
	if err != nil {
		t.Fatalf("cameras: %v", err)
	}
	if len(cameras) != 2 {
		t.Fatalf("expected two cameras, got %d", len(cameras))
	}
	if cameras[0].ID != "built_in" || cameras[0].IsContinuity {
		t.Fatalf("unexpected built-in camera: %+v", cameras[0])
	}
	if !cameras[1].IsContinuity || cameras[1].Resolution == nil || cameras[1].Resolution.Width != 1920 {
		t.Fatalf("unexpected continuity camera: %+v", cameras[1])
	}

	screens, err := p.Screens(context.Background())
	if err != nil {
		t.Fatalf("screens: %v", err)
	}
	if len(screens) != 1 || screens[0].DisplayID != 1 || screens[0].IsWindow {
		t.Fatalf("unexpected screens: %+v", screens)
	}
}

func TestStaticProviderRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (StaticProvider{}).Cameras(ctx); err == nil {
		t.Fatalf("expected cancellation error")
	}
	if _, err := (NativeProvider{}).Screens(ctx); err == nil {
		t.Fatalf("expected cancellation error")
	}
}

func TestCameraJSONShape(t *testing.T) {
	data, err := json.Marshal([]Camera{
		{ID: "a", Name: "A", Resolution: &Resolution{Width: 640, Height: 480}},
		{ID: "b", Name: "B"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"resolution":[640,480]`) {
		t.Fatalf("expected tuple resolution, got %s", out)
	}
	if !strings.Contains(out, `"resolution":null`) {
		t.Fatalf("expected null resolution, got %s", out)
	}
	if !strings.Contains(out, `"is_continuity":false`) {
		t.Fatalf("expected is_continuity field, got %s", out)
	}

	var decoded []Camera
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0].Resolution == nil || decoded[0].Resolution.Height != 480 || decoded[1].Resolution != nil {
		t.Fatalf("unexpected decoded cameras: %+v", decoded)
	}
}

func TestNewProvider(t *testing.T) {
	cases := map[string]struct {
		name    string
		want    Provider
		wantErr bool
	}{
		"default": {name: "", want: StaticProvider{}},
		"static":  {name: "Static", want: StaticProvider{}},
		"native":  {name: "native", want: NativeProvider{}},
		"unknown": {name: "avfoundation", wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := NewProvider(tc.name)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %T, got %T", tc.want, got)
			}
		})
	}
}
