package permissions

import (
	"os"
	"runtime"
	"strings"
)

// Status enumerates coarse permission results for desktop privacy prompts.
type Status string

const (
	// StatusUnknown indicates no explicit signal about permission state.
	StatusUnknown Status = "unknown"
	// StatusGranted signals that permission was previously granted.
	StatusGranted Status = "granted"
	// StatusDenied indicates the user has explicitly denied access.
	StatusDenied Status = "denied"
	// StatusPromptRequired means the platform will prompt at runtime.
	StatusPromptRequired Status = "prompt"
	// StatusUnavailable reports that the capability is not supported.
	StatusUnavailable Status = "unavailable"
)

// ProbeResult represents the coarse state for a permission surface.
type ProbeResult struct {
	Status   Status `json:"status"`
	Message  string `json:"message,omitempty"`
	Guidance string `json:"guidance,omitempty"`
}

// Report groups every probe the recorder cares about.
type Report struct {
	Accessibility   ProbeResult `json:"accessibility"`
	ScreenRecording ProbeResult `json:"screen_recording"`
	Camera          ProbeResult `json:"camera"`
	Microphone      ProbeResult `json:"microphone"`
}

// LookupEnvFunc exposes environment probing for testability.
type LookupEnvFunc func(string) (string, bool)

// lookupEnv is declared for swapping in tests.
var lookupEnv = func(key string) (string, bool) {
	return os.LookupEnv(key)
}

// goos is declared for swapping in tests.
var goos = runtime.GOOS

// Check is the command-surface permission gate. Real platform checks are not
// wired yet, so it always reports granted.
func Check() bool {
	return true
}

// Probe gathers every permission probe into a single report.
func Probe(lookup LookupEnvFunc) Report {
	return Report{
		Accessibility:   ProbeAccessibility(lookup),
		ScreenRecording: ProbeScreenRecording(lookup),
		Camera:          ProbeCamera(lookup),
		Microphone:      ProbeMicrophone(lookup),
	}
}

// ProbeAccessibility reports whether global input hooks may be installed.
func ProbeAccessibility(lookup LookupEnvFunc) ProbeResult {
	return probe(lookup, "CURSORCAST_ACCESSIBILITY", "accessibility", map[string]ProbeResult{
		"darwin":  {Status: StatusPromptRequired, Message: "accessibility trust required for global input hooks"},
		"windows": {Status: StatusGranted, Message: "low-level hooks need no consent on windows"},
		"linux":   {Status: StatusGranted, Message: "X11 record extension needs no consent"},
	})
}

// ProbeScreenRecording inspects the execution environment for screen recording permissions.
func ProbeScreenRecording(lookup LookupEnvFunc) ProbeResult {
	return probe(lookup, "CURSORCAST_SCREEN_RECORDING", "screen recording", map[string]ProbeResult{
		"darwin": {Status: StatusPromptRequired, Message: "awaiting macOS screen recording authorisation"},
	})
}

// ProbeCamera reports coarse camera capture permissions.
func ProbeCamera(lookup LookupEnvFunc) ProbeResult {
	return probe(lookup, "CURSORCAST_CAMERA", "camera", map[string]ProbeResult{
		"darwin": {Status: StatusPromptRequired, Message: "camera access will prompt at runtime"},
		"linux":  {Status: StatusGranted, Message: "camera access governed by /dev/video* file modes"},
	})
}

// ProbeMicrophone reports coarse microphone capture permissions.
func ProbeMicrophone(lookup LookupEnvFunc) ProbeResult {
	return probe(lookup, "CURSORCAST_MICROPHONE", "microphone", map[string]ProbeResult{
		"darwin": {Status: StatusPromptRequired, Message: "microphone access will prompt at runtime"},
	})
}

func probe(lookup LookupEnvFunc, key, name string, platform map[string]ProbeResult) ProbeResult {
	if lookup == nil {
		lookup = lookupEnv
	}
	if value, ok := lookup(key); ok {
		return interpretPermissionFlag(name, value)
	}
	if res, ok := platform[goos]; ok {
		return res
	}
	return ProbeResult{Status: StatusUnavailable, Message: name + " unsupported on this platform"}
}

func interpretPermissionFlag(name, value string) ProbeResult {
	normalised := strings.ToLower(strings.TrimSpace(value))
	switch normalised {
	case "granted", "allow", "allowed", "yes", "true":
		return ProbeResult{Status: StatusGranted, Message: name + " permission pre-authorised via env override"}
	case "denied", "no", "false", "blocked":
		return ProbeResult{Status: StatusDenied, Message: name + " permission denied via env override", Guidance: "use 'tccutil reset' or update CURSORCAST_* env to re-test"}
	case "prompt", "ask":
		return ProbeResult{Status: StatusPromptRequired, Message: name + " permission will prompt at runtime"}
	case "unavailable", "unsupported":
		return ProbeResult{Status: StatusUnavailable, Message: name + " permission unavailable on this platform"}
	default:
		return ProbeResult{Status: StatusUnknown, Message: name + " permission state unknown"}
	}
}

// StatusString returns the string representation for diagnostics.
func (p ProbeResult) StatusString() string {
	if p.Status == "" {
		return string(StatusUnknown)
	}
	return string(p.Status)
}
