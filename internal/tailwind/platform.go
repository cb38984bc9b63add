package tailwind

import "runtime"

// Platform identifies the host OS/architecture pair using the names
// upstream release assets are published under.
type Platform struct {
	OS   string
	Arch string
}

// DetectPlatform maps the running process onto its release platform key.
// Derived once per run; callers pass the value around instead of
// recomputing it.
func DetectPlatform() (Platform, error) {
	return platformFor(runtime.GOOS, runtime.GOARCH)
}

func platformFor(goos, goarch string) (Platform, error) {
	var p Platform

	switch goos {
	case "linux":
		p.OS = "linux"
	case "darwin":
		p.OS = "macos"
	case "windows":
		p.OS = "windows"
	default:
		return Platform{}, &UnsupportedPlatformError{OS: goos, Arch: goarch}
	}

	switch goarch {
	case "amd64":
		p.Arch = "x64"
	case "arm64":
		// Upstream ships no windows-arm64 asset; those hosts run the
		// x64 build through emulation.
		if p.OS == "windows" {
			p.Arch = "x64"
		} else {
			p.Arch = "arm64"
		}
	default:
		return Platform{}, &UnsupportedPlatformError{OS: goos, Arch: goarch}
	}

	return p, nil
}

// String renders the platform as it appears in cache paths.
func (p Platform) String() string {
	return p.OS + "-" + p.Arch
}

// AssetName returns the release artifact filename for this platform.
func (p Platform) AssetName() string {
	name := "tailwindcss-" + p.OS + "-" + p.Arch
	if p.OS == "windows" {
		name += ".exe"
	}
	return name
}

// ExeName returns the filename an installed binary uses inside the cache.
func (p Platform) ExeName() string {
	if p.OS == "windows" {
		return "tailwindcss.exe"
	}
	return "tailwindcss"
}
