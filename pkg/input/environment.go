package input

import (
	"strings"

	"github.com/offlinefirst/cursorcast/pkg/permissions"
)

// Provider identifiers for diagnostics and config.
const (
	ProviderNative    = "native"
	ProviderSynthetic = "synthetic"
)

// Environment summarises global input hook support.
type Environment struct {
	Provider   string
	Available  bool
	Permission string
	Message    string
	Guidance   string
}

// DetectEnvironment reports whether the requested provider can run here.
func DetectEnvironment(provider string) Environment {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider != ProviderSynthetic {
		provider = ProviderNative
	}

	accessibility := permissions.ProbeAccessibility(nil)
	env := Environment{
		Provider:   provider,
		Permission: accessibility.StatusString(),
		Message:    accessibility.Message,
		Guidance:   accessibility.Guidance,
		Available:  true,
	}

	if provider == ProviderSynthetic {
		env.Permission = "not_applicable"
		env.Message = "synthetic pointer script"
		env.Guidance = ""
		return env
	}

	switch {
	case !NativeSupported:
		env.Available = false
		env.Message = ErrNativeUnavailable.Error()
		env.Guidance = "rebuild with CGO_ENABLED=1 or set listener.source: synthetic"
	case accessibility.Status == permissions.StatusDenied || accessibility.Status == permissions.StatusUnavailable:
		env.Available = false
		if env.Message == "" {
			env.Message = ErrAccessibilityPermission.Error()
		}
	}
	return env
}

// NewSource resolves a provider name into a Source.
func NewSource(provider string, synthetic SyntheticOptions) Source {
	if strings.EqualFold(strings.TrimSpace(provider), ProviderSynthetic) {
		return NewSyntheticSource(synthetic)
	}
	return NewNativeSource()
}
