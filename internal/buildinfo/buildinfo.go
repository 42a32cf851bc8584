// Package buildinfo reports the version stamped into the cursorcast binary.
package buildinfo

import "runtime/debug"

// version is overridden with -ldflags "-X .../buildinfo.version=v1.2.3".
var version = "dev"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// SetVersion overrides the reported version. Empty values are ignored.
func SetVersion(v string) {
	if v == "" {
		return
	}
	version = v
}

// Version returns the stamped version, falling back to the module version.
func Version() string {
	if version != "dev" {
		return version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// Revision returns the short VCS revision recorded by the Go toolchain, or
// an empty string when the binary was built outside a checkout.
func Revision() string {
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if revision != "" && modified {
		revision += "-dirty"
	}
	return revision
}
