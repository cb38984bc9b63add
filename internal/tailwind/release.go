package tailwind

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultAPIBase      = "https://api.github.com/repos/tailwindlabs/tailwindcss/releases"
	defaultDownloadBase = "https://github.com/tailwindlabs/tailwindcss/releases/download"
	userAgent           = "crosswind/1.0"

	fetchAttempts = 2
	retryDelay    = 500 * time.Millisecond
)

// Logger is the subset of log.Logger this package needs.
type Logger interface {
	Printf(format string, v ...any)
}

// Asset is one downloadable file attached to a release. Size and Digest
// are zero when the release listing was never consulted.
type Asset struct {
	Name   string
	URL    string
	Size   int64
	Digest string
}

// Release is a concrete published version of the tool.
type Release struct {
	Tag    string
	Assets []Asset
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Size               int64  `json:"size"`
	Digest             string `json:"digest"`
}

type githubRelease struct {
	TagName string        `json:"tag_name"`
	Assets  []githubAsset `json:"assets"`
}

// Resolver turns version specs into concrete releases. Explicit tags
// never touch the network; latest lookups hit the release API once and
// are memoized for the resolver's lifetime. Not safe for concurrent use.
type Resolver struct {
	Client       *http.Client
	APIBase      string
	DownloadBase string
	Logger       Logger

	latest *Release
}

// NewResolver constructs a resolver against the upstream GitHub
// endpoints. A nil client gets a default with a request timeout.
func NewResolver(client *http.Client, logger Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Resolver{
		Client:       client,
		APIBase:      defaultAPIBase,
		DownloadBase: defaultDownloadBase,
		Logger:       logger,
	}
}

// Resolve maps a spec to a concrete release. An explicit tag
// short-circuits without a listing: the tag alone determines every
// downstream path.
func (r *Resolver) Resolve(ctx context.Context, spec Spec) (Release, error) {
	if !spec.Latest() {
		return Release{Tag: spec.Tag}, nil
	}
	if r.latest != nil {
		return *r.latest, nil
	}

	release, err := r.fetchLatest(ctx)
	if err != nil {
		return Release{}, &ResolveError{Spec: spec.String(), Err: err}
	}
	r.latest = &release
	return release, nil
}

func (r *Resolver) fetchLatest(ctx context.Context) (Release, error) {
	endpoint := r.APIBase + "/latest"
	resp, err := fetchURL(ctx, r.Client, endpoint, "application/vnd.github+json")
	if err != nil {
		return Release{}, err
	}
	defer resp.Body.Close()

	var decoded githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Release{}, fmt.Errorf("decode release listing: %w", err)
	}
	if decoded.TagName == "" {
		return Release{}, fmt.Errorf("release listing from %s has no tag_name", endpoint)
	}

	release := Release{Tag: decoded.TagName, Assets: make([]Asset, 0, len(decoded.Assets))}
	for _, asset := range decoded.Assets {
		if asset.Name == "" || asset.BrowserDownloadURL == "" {
			return Release{}, fmt.Errorf("release %s lists an asset without name or download url", decoded.TagName)
		}
		release.Assets = append(release.Assets, Asset{
			Name:   asset.Name,
			URL:    asset.BrowserDownloadURL,
			Size:   asset.Size,
			Digest: asset.Digest,
		})
	}

	if r.Logger != nil {
		r.Logger.Printf("resolved latest release tag=%s assets=%d", release.Tag, len(release.Assets))
	}
	return release, nil
}

// Locate returns the artifact for the platform. A release resolved from
// the API must list the conventional asset name; a bare release built
// from an explicit tag gets the direct download URL for that name.
func (r *Resolver) Locate(release Release, platform Platform) (Asset, error) {
	name := platform.AssetName()
	if len(release.Assets) == 0 {
		return Asset{
			Name: name,
			URL:  fmt.Sprintf("%s/%s/%s", r.DownloadBase, release.Tag, name),
		}, nil
	}
	for _, asset := range release.Assets {
		if asset.Name == name {
			return asset, nil
		}
	}
	return Asset{}, &UnsupportedPlatformError{OS: platform.OS, Arch: platform.Arch, Tag: release.Tag}
}

// fetchURL issues a GET with a bounded retry. Transport errors and 5xx
// responses get one more attempt after a short pause; any other failure
// status is final on first sight. The caller owns the body on success.
func fetchURL(ctx context.Context, client *http.Client, url, accept string) (*http.Response, error) {
	var (
		lastErr    error
		lastStatus int
	)

	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, &DownloadError{URL: url, Attempts: attempt - 1, Err: ctx.Err()}
			case <-time.After(retryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &DownloadError{URL: url, Attempts: attempt, Err: err}
		}
		req.Header.Set("User-Agent", userAgent)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			lastStatus = 0
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		lastStatus = resp.StatusCode
		lastErr = fmt.Errorf("unexpected status %s", resp.Status)
		resp.Body.Close()
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, &DownloadError{URL: url, Status: resp.StatusCode, Attempts: attempt, Err: lastErr}
		}
	}

	return nil, &DownloadError{URL: url, Status: lastStatus, Attempts: fetchAttempts, Err: lastErr}
}
