package permissions

import "testing"

type fakeLookup map[string]string

func (f fakeLookup) get(key string) (string, bool) {
	v, ok := f[key]
	return v, ok
}

func withGOOS(t *testing.T, value string) {
	t.Helper()
	orig := goos
	goos = value
	t.Cleanup(func() { goos = orig })
}

func TestInterpretPermissionFlag(t *testing.T) {
	cases := map[string]struct {
		value    string
		expected Status
	}{
		"granted":     {"granted", StatusGranted},
		"denied":      {"denied", StatusDenied},
		"prompt":      {"prompt", StatusPromptRequired},
		"unsupported": {"unsupported", StatusUnavailable},
		"unknown":     {"", StatusUnknown},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res := interpretPermissionFlag("test", tc.value)
			if res.Status != tc.expected {
				t.Fatalf("expected %s, got %s", tc.expected, res.Status)
			}
		})
	}
}

func TestCheckAlwaysGranted(t *testing.T) {
	if !Check() {
		t.Fatalf("expected permission stub to report granted")
	}
}

func TestProbeScreenRecordingHonoursEnv(t *testing.T) {
	lookup := fakeLookup{"CURSORCAST_SCREEN_RECORDING": "denied"}
	res := ProbeScreenRecording(lookup.get)
	if res.Status != StatusDenied {
		t.Fatalf("expected denied, got %s", res.Status)
	}
	if res.Guidance == "" {
		t.Fatalf("expected guidance when denied")
	}
}

func TestProbeAccessibilityPlatformDefaults(t *testing.T) {
	withGOOS(t, "darwin")
	if res := ProbeAccessibility(fakeLookup{}.get); res.Status != StatusPromptRequired {
		t.Fatalf("expected prompt on darwin, got %s", res.Status)
	}

	withGOOS(t, "plan9")
	if res := ProbeAccessibility(fakeLookup{}.get); res.Status != StatusUnavailable {
		t.Fatalf("expected unavailable on unsupported platform, got %s", res.Status)
	}
}

func TestProbeCollectsReport(t *testing.T) {
	withGOOS(t, "linux")
	lookup := fakeLookup{"CURSORCAST_MICROPHONE": "granted", "CURSORCAST_CAMERA": "blocked"}
	report := Probe(lookup.get)
	if report.Microphone.Status != StatusGranted {
		t.Fatalf("expected microphone granted, got %s", report.Microphone.Status)
	}
	if report.Camera.Status != StatusDenied {
		t.Fatalf("expected camera denied, got %s", report.Camera.Status)
	}
	if report.Accessibility.Status != StatusGranted {
		t.Fatalf("expected accessibility granted on linux, got %s", report.Accessibility.Status)
	}
	if report.ScreenRecording.StatusString() != string(StatusUnavailable) {
		t.Fatalf("expected screen recording unavailable on linux, got %s", report.ScreenRecording.StatusString())
	}
}
