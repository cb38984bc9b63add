package tailwind

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

const cacheDirEnv = "CROSSWIND_CACHE_DIR"

// CacheRoot determines the per-user cache directory for downloaded binaries.
func CacheRoot() (string, error) {
	if override, ok := os.LookupEnv(cacheDirEnv); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return "", fmt.Errorf("resolve %s: %w", cacheDirEnv, err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "crosswind"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "crosswind", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "crosswind", "cache"), nil
	default:
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "crosswind"), nil
		}
		return filepath.Join(home, ".cache", "crosswind"), nil
	}
}

// Cache stores downloaded binaries under <root>/<tag>/<os-arch>/. Entries
// keep the write bit unset once installed. Concurrent processes populating
// the same entry race benignly; each writes its own temp file in the
// destination directory and the final rename is atomic.
type Cache struct {
	Root   string
	Client *http.Client
	Logger Logger

	// Progress, when set, receives byte counts while a download streams.
	// Total is zero when the length is unknown.
	Progress func(written, total int64)
}

// NewCache builds a cache rooted at dir. A nil client gets the default
// transport; downloads carry their own context for cancellation.
func NewCache(dir string, client *http.Client, logger Logger) *Cache {
	if client == nil {
		client = http.DefaultClient
	}
	return &Cache{Root: dir, Client: client, Logger: logger}
}

// BinaryPath returns where the binary for a release tag and platform lives.
func (c *Cache) BinaryPath(tag string, platform Platform) string {
	return filepath.Join(c.Root, tag, platform.String(), platform.ExeName())
}

// Lookup reports whether the cache already holds the binary.
func (c *Cache) Lookup(tag string, platform Platform) (string, bool) {
	path := c.BinaryPath(tag, platform)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// EnsureBinary returns the cached binary for the asset, downloading and
// verifying it on a miss. A failed verification leaves no cache entry
// behind.
func (c *Cache) EnsureBinary(ctx context.Context, asset Asset, tag string, platform Platform) (string, error) {
	if path, ok := c.Lookup(tag, platform); ok {
		return path, nil
	}

	dest := c.BinaryPath(tag, platform)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("prepare cache dir: %w", err)
	}
	if err := c.download(ctx, asset, dest); err != nil {
		return "", err
	}
	return dest, nil
}

func (c *Cache) download(ctx context.Context, asset Asset, dest string) error {
	if c.Logger != nil {
		c.Logger.Printf("downloading %s", asset.URL)
	}

	resp, err := fetchURL(ctx, c.Client, asset.URL, "application/octet-stream")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	total := asset.Size
	if total <= 0 {
		total = resp.ContentLength
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "tailwindcss-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	hash := sha256.New()
	counter := &countingWriter{total: total, report: c.Progress}
	written, err := io.Copy(io.MultiWriter(tmp, hash, counter), resp.Body)
	if err != nil {
		tmp.Close()
		return &DownloadError{URL: asset.URL, Attempts: 1, Err: fmt.Errorf("stream body: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := verifyArtifact(asset, written, hash.Sum(nil)); err != nil {
		return err
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0o555); err != nil {
			return fmt.Errorf("chmod binary: %w", err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("install binary: %w", err)
	}

	if c.Logger != nil {
		c.Logger.Printf("cached %s (%d bytes)", dest, written)
	}
	return nil
}

// verifyArtifact checks the download against whatever the release listing
// published. An empty body always fails; size and digest apply only when
// the listing carried them.
func verifyArtifact(asset Asset, written int64, sum []byte) error {
	if written == 0 {
		return &IntegrityError{Asset: asset.Name, Field: "size", Want: "non-empty", Got: "0 bytes"}
	}
	if asset.Size > 0 && written != asset.Size {
		return &IntegrityError{
			Asset: asset.Name,
			Field: "size",
			Want:  strconv.FormatInt(asset.Size, 10),
			Got:   strconv.FormatInt(written, 10),
		}
	}
	if want, ok := strings.CutPrefix(asset.Digest, "sha256:"); ok && want != "" {
		got := hex.EncodeToString(sum)
		if !strings.EqualFold(got, want) {
			return &IntegrityError{Asset: asset.Name, Field: "sha256", Want: want, Got: got}
		}
	}
	return nil
}

type countingWriter struct {
	written int64
	total   int64
	report  func(written, total int64)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.report != nil {
		w.report(w.written, w.total)
	}
	return len(p), nil
}

// Entry describes one cached binary.
type Entry struct {
	Tag      string `json:"tag"`
	Platform string `json:"platform"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// Entries lists every cached binary, sorted by tag then platform. A
// missing cache root is an empty cache, not an error.
func (c *Cache) Entries() ([]Entry, error) {
	tags, err := os.ReadDir(c.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache root: %w", err)
	}

	var entries []Entry
	for _, tagDir := range tags {
		if !tagDir.IsDir() {
			continue
		}
		platforms, err := os.ReadDir(filepath.Join(c.Root, tagDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("read cache tag %s: %w", tagDir.Name(), err)
		}
		for _, platDir := range platforms {
			if !platDir.IsDir() {
				continue
			}
			dir := filepath.Join(c.Root, tagDir.Name(), platDir.Name())
			files, err := os.ReadDir(dir)
			if err != nil {
				return nil, fmt.Errorf("read cache entry %s: %w", dir, err)
			}
			for _, file := range files {
				info, err := file.Info()
				if err != nil || !info.Mode().IsRegular() {
					continue
				}
				entries = append(entries, Entry{
					Tag:      tagDir.Name(),
					Platform: platDir.Name(),
					Path:     filepath.Join(dir, file.Name()),
					Size:     info.Size(),
				})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Tag != entries[j].Tag {
			return entries[i].Tag < entries[j].Tag
		}
		return entries[i].Platform < entries[j].Platform
	})
	return entries, nil
}

// Remove deletes every cached build of one release tag.
func (c *Cache) Remove(tag string) error {
	if err := os.RemoveAll(filepath.Join(c.Root, tag)); err != nil {
		return fmt.Errorf("remove cached release %s: %w", tag, err)
	}
	return nil
}

// Evict drops a single tag and platform entry so a fresh download can
// replace it.
func (c *Cache) Evict(tag string, platform Platform) error {
	if err := os.RemoveAll(filepath.Join(c.Root, tag, platform.String())); err != nil {
		return fmt.Errorf("evict cache entry: %w", err)
	}
	return nil
}

// Clear removes the entire cache root.
func (c *Cache) Clear() error {
	if err := os.RemoveAll(c.Root); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
