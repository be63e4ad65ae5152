package batch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t,
		filepath.Join(dir, "b.tif"),
		filepath.Join(dir, "a.tif"),
		filepath.Join(dir, "ortho_c.tif"),
		filepath.Join(dir, "notes.txt"),
	)
	if err := os.Mkdir(filepath.Join(dir, "dir.tif"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	all, err := Discover(dir, "", ".tif")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	want := []string{"a", "b", "ortho_c"}
	if len(all) != len(want) {
		t.Fatalf("got %d sources, want %d: %+v", len(all), len(want), all)
	}
	for i, name := range want {
		if all[i].Name != name {
			t.Errorf("source %d: got %q, want %q", i, all[i].Name, name)
		}
	}

	prefixed, err := Discover(dir, "ortho_", ".tif")
	if err != nil {
		t.Fatalf("Discover with prefix failed: %v", err)
	}
	if len(prefixed) != 1 || prefixed[0].Name != "ortho_c" {
		t.Errorf("prefix: got %+v", prefixed)
	}
}

func TestDiscover_ExtensionPattern(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "tile.jp2"))

	got, err := Discover(dir, "", ".*")
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "tile" {
		t.Errorf("got %+v", got)
	}
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Discover(dir, "", ".tif"); !errors.Is(err, ErrNoImages) {
		t.Errorf("empty directory: got %v, want ErrNoImages", err)
	}
	if _, err := Discover(filepath.Join(dir, "missing"), "", ".tif"); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestDiscoverPairs(t *testing.T) {
	dir := t.TempDir()
	touch(t,
		filepath.Join(dir, DirRGB, "x1.tif"),
		filepath.Join(dir, DirRGB, "x2.tif"),
		filepath.Join(dir, DirNIR, "x1.jp2"),
		filepath.Join(dir, DirNIR, "x2.jp2"),
	)

	pairs, err := DiscoverPairs(dir, "", ".tif", ".jp2")
	if err != nil {
		t.Fatalf("DiscoverPairs failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	if pairs[1].Name != "x2" || pairs[1].NIR != filepath.Join(dir, DirNIR, "x2.jp2") {
		t.Errorf("pair: got %+v", pairs[1])
	}
}

func TestDiscoverPairs_MissingNIR(t *testing.T) {
	dir := t.TempDir()
	touch(t,
		filepath.Join(dir, DirRGB, "x1.tif"),
		filepath.Join(dir, DirNIR, "other.tif"),
	)

	_, err := DiscoverPairs(dir, "", ".tif", ".tif")
	if !errors.Is(err, ErrNoImages) {
		t.Errorf("got %v, want ErrNoImages", err)
	}
}

func TestDecimate(t *testing.T) {
	sources := make([]Source, 7)
	for i := range sources {
		sources[i].Name = string(rune('a' + i))
	}

	tests := []struct {
		jump int
		want string
	}{
		{0, "abcdefg"},
		{1, "abcdefg"},
		{2, "aceg"},
		{3, "adg"},
		{10, "a"},
	}
	for _, tt := range tests {
		got := ""
		for _, s := range Decimate(sources, tt.jump) {
			got += s.Name
		}
		if got != tt.want {
			t.Errorf("jump %d: got %q, want %q", tt.jump, got, tt.want)
		}
	}
}
