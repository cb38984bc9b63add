package tailwind

import "fmt"

// ResolveError reports a failure to turn a version spec into a concrete
// release tag.
type ResolveError struct {
	Spec string
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve tailwindcss version %q: %v", e.Spec, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// UnsupportedPlatformError indicates no release artifact exists for the
// host OS/architecture pair. Tag is set when a specific release was
// inspected and found to lack the artifact.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
	Tag  string
}

func (e *UnsupportedPlatformError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("release %s has no tailwindcss artifact for %s/%s", e.Tag, e.OS, e.Arch)
	}
	return fmt.Sprintf("no tailwindcss artifact for %s/%s", e.OS, e.Arch)
}

// DownloadError reports a fetch that failed after its attempts were
// exhausted. Status carries the last HTTP status, or zero when no
// response arrived at all.
type DownloadError struct {
	URL      string
	Status   int
	Attempts int
	Err      error
}

func (e *DownloadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("download %s: status %d after %d attempt(s)", e.URL, e.Status, e.Attempts)
	}
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// IntegrityError reports a downloaded artifact whose byte count or
// checksum did not match the published values. The temporary file is
// discarded before this error is returned; the cache never holds the
// corrupt bytes.
type IntegrityError struct {
	Asset string
	Field string
	Want  string
	Got   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("artifact %s failed verification: %s mismatch (want %s, got %s)", e.Asset, e.Field, e.Want, e.Got)
}

// NotFoundError indicates no usable binary through any permitted
// channel. Path is set when an explicit binary override pointed at a
// missing file.
type NotFoundError struct {
	Path        string
	NoDownloads bool
}

func (e *NotFoundError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("tailwindcss binary not found at %s", e.Path)
	}
	if e.NoDownloads {
		return "tailwindcss not found in PATH; downloads are disabled, install it manually or re-enable downloads"
	}
	return "tailwindcss binary not found"
}
