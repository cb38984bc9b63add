package tailwind

import (
	"context"
	"net/http"
	"os"
	"os/exec"
)

// Source identifies where a resolved binary came from.
type Source string

const (
	SourceCache    Source = "cache"
	SourcePath     Source = "path"
	SourceOverride Source = "override"
)

// lookPath is a seam for tests.
var lookPath = exec.LookPath

// Options selects a binary for one invocation.
type Options struct {
	// Version is the parsed version spec driving release resolution.
	Version Spec
	// NoDownloads restricts resolution to a PATH-installed binary.
	NoDownloads bool
	// BinaryPath, when set, bypasses resolution and uses this executable.
	BinaryPath string
}

// ResolvedBinary is the outcome of resolution.
type ResolvedBinary struct {
	Path   string
	Tag    string
	Source Source
}

// Manager wires version resolution, artifact location, and the binary
// cache behind the resolution policy.
type Manager struct {
	Releases *Resolver
	Cache    *Cache
	Platform Platform
	Logger   Logger
}

// NewManager builds a manager for the host platform rooted at the
// default cache directory.
func NewManager(client *http.Client, logger Logger) (*Manager, error) {
	root, err := CacheRoot()
	if err != nil {
		return nil, err
	}
	platform, err := DetectPlatform()
	if err != nil {
		return nil, err
	}
	return &Manager{
		Releases: NewResolver(client, logger),
		Cache:    NewCache(root, client, logger),
		Platform: platform,
		Logger:   logger,
	}, nil
}

// ResolveBinary applies the resolution policy, evaluated once per
// invocation. An explicit path override wins outright. With downloads
// disabled only a PATH install is acceptable and no network request is
// made. Otherwise the release pipeline materializes a cached binary.
func (m *Manager) ResolveBinary(ctx context.Context, opts Options) (ResolvedBinary, error) {
	if opts.BinaryPath != "" {
		info, err := os.Stat(opts.BinaryPath)
		if err != nil || info.IsDir() {
			return ResolvedBinary{}, &NotFoundError{Path: opts.BinaryPath}
		}
		return ResolvedBinary{Path: opts.BinaryPath, Source: SourceOverride}, nil
	}

	if opts.NoDownloads {
		path, err := lookPath("tailwindcss")
		if err != nil {
			return ResolvedBinary{}, &NotFoundError{NoDownloads: true}
		}
		if m.Logger != nil {
			m.Logger.Printf("using tailwindcss from PATH: %s", path)
		}
		return ResolvedBinary{Path: path, Source: SourcePath}, nil
	}

	release, err := m.Releases.Resolve(ctx, opts.Version)
	if err != nil {
		return ResolvedBinary{}, err
	}

	if path, ok := m.Cache.Lookup(release.Tag, m.Platform); ok {
		return ResolvedBinary{Path: path, Tag: release.Tag, Source: SourceCache}, nil
	}

	asset, err := m.Releases.Locate(release, m.Platform)
	if err != nil {
		return ResolvedBinary{}, err
	}
	path, err := m.Cache.EnsureBinary(ctx, asset, release.Tag, m.Platform)
	if err != nil {
		return ResolvedBinary{}, err
	}
	return ResolvedBinary{Path: path, Tag: release.Tag, Source: SourceCache}, nil
}
