package tailwind

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func testManager(t *testing.T, client *http.Client) *Manager {
	t.Helper()
	return &Manager{
		Releases: NewResolver(client, nil),
		Cache:    NewCache(t.TempDir(), client, nil),
		Platform: Platform{OS: "linux", Arch: "x64"},
	}
}

func stubLookPath(t *testing.T, path string, err error) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(string) (string, error) {
		if err != nil {
			return "", err
		}
		return path, nil
	}
}

func TestResolveBinaryOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "tailwindcss")
	if err := os.WriteFile(override, []byte("bin"), 0o755); err != nil {
		t.Fatalf("write override: %v", err)
	}

	transport := &deadTransport{}
	m := testManager(t, &http.Client{Transport: transport})

	resolved, err := m.ResolveBinary(context.Background(), Options{BinaryPath: override})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Source != SourceOverride || resolved.Path != override {
		t.Fatalf("unexpected resolution %+v", resolved)
	}
	if transport.calls != 0 {
		t.Fatalf("override should not touch network, got %d calls", transport.calls)
	}
}

func TestResolveBinaryOverrideMissing(t *testing.T) {
	m := testManager(t, &http.Client{Transport: &deadTransport{}})

	missing := filepath.Join(t.TempDir(), "nope")
	_, err := m.ResolveBinary(context.Background(), Options{BinaryPath: missing})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Path != missing {
		t.Fatalf("expected override path on error, got %q", notFound.Path)
	}
}

func TestResolveBinaryNoDownloadsUsesPath(t *testing.T) {
	stubLookPath(t, "/usr/local/bin/tailwindcss", nil)

	transport := &deadTransport{}
	m := testManager(t, &http.Client{Transport: transport})

	resolved, err := m.ResolveBinary(context.Background(), Options{NoDownloads: true})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Source != SourcePath || resolved.Path != "/usr/local/bin/tailwindcss" {
		t.Fatalf("unexpected resolution %+v", resolved)
	}
	if transport.calls != 0 {
		t.Fatalf("no-downloads mode should not touch network, got %d calls", transport.calls)
	}
}

func TestResolveBinaryNoDownloadsMissing(t *testing.T) {
	stubLookPath(t, "", errors.New("not found"))

	transport := &deadTransport{}
	m := testManager(t, &http.Client{Transport: transport})

	_, err := m.ResolveBinary(context.Background(), Options{NoDownloads: true})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if !notFound.NoDownloads {
		t.Fatalf("expected no-downloads flag on error")
	}
	if transport.calls != 0 {
		t.Fatalf("expected no network attempt, got %d calls", transport.calls)
	}
}

func TestResolveBinaryExplicitTagPipeline(t *testing.T) {
	// PATH has a binary, but downloads are enabled, so the pipeline runs
	// and the cache entry wins.
	stubLookPath(t, "/usr/local/bin/tailwindcss", nil)

	body := []byte("downloaded binary")
	srv, requests := binaryServer(t, body)

	m := testManager(t, srv.Client())
	m.Releases.DownloadBase = srv.URL

	spec, err := ParseSpec("v4.1.6")
	if err != nil {
		t.Fatalf("parse spec: %v", err)
	}

	first, err := m.ResolveBinary(context.Background(), Options{Version: spec})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first.Source != SourceCache || first.Tag != "v4.1.6" {
		t.Fatalf("unexpected resolution %+v", first)
	}
	want := filepath.Join(m.Cache.Root, "v4.1.6", "linux-x64", "tailwindcss")
	if first.Path != want {
		t.Fatalf("expected %s, got %s", want, first.Path)
	}
	if *requests != 1 {
		t.Fatalf("expected 1 download, got %d", *requests)
	}

	second, err := m.ResolveBinary(context.Background(), Options{Version: spec})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.Path != first.Path {
		t.Fatalf("expected cache hit at %s, got %s", first.Path, second.Path)
	}
	if *requests != 1 {
		t.Fatalf("cache hit should not re-download, got %d requests", *requests)
	}
}
