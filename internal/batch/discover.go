package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sub-directories of a NIR-mode input directory.
const (
	DirRGB = "RVB"
	DirNIR = "PIR"
)

// ErrNoImages is returned when a directory holds no matching image.
var ErrNoImages = errors.New("no matching images")

// Source is one image to process. NIR is empty in colour mode.
type Source struct {
	Name string `json:"name"`
	RGB  string `json:"rgb"`
	NIR  string `json:"nir,omitempty"`
}

// Discover lists the colour images of dir matching prefix + "*" + ext,
// sorted by path.
func Discover(dir, prefix, ext string) ([]Source, error) {
	paths, err := match(dir, prefix+"*"+ext)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, len(paths))
	for i, p := range paths {
		sources[i] = Source{Name: baseName(p, ext), RGB: p}
	}
	return sources, nil
}

// DiscoverPairs lists the colour images of dir/RVB and pairs each with the
// near-infrared image dir/PIR/<name><extNIR>.
func DiscoverPairs(dir, prefix, extRGB, extNIR string) ([]Source, error) {
	sources, err := Discover(filepath.Join(dir, DirRGB), prefix, extRGB)
	if err != nil {
		return nil, err
	}
	nirDir := filepath.Join(dir, DirNIR)
	for i := range sources {
		nir, err := match(nirDir, escape(sources[i].Name)+extNIR)
		if err != nil {
			return nil, fmt.Errorf("near-infrared image for %s: %w", sources[i].RGB, err)
		}
		sources[i].NIR = nir[0]
	}
	return sources, nil
}

// Decimate keeps every jump-th source, starting with the first.
func Decimate(sources []Source, jump int) []Source {
	if jump <= 1 {
		return sources
	}
	kept := make([]Source, 0, (len(sources)+jump-1)/jump)
	for i := 0; i < len(sources); i += jump {
		kept = append(kept, sources[i])
	}
	return kept
}

func match(dir, pattern string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("image directory: %w", err)
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	files := paths[:0]
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrNoImages, pattern, dir)
	}
	sort.Strings(files)
	return files, nil
}

// baseName strips the directory and the extension pattern from path.
func baseName(path, ext string) string {
	base := filepath.Base(path)
	if ext != "" && !strings.ContainsAny(ext, `*?[\`) && strings.HasSuffix(base, ext) {
		return strings.TrimSuffix(base, ext)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// escape quotes glob metacharacters in a literal file name.
func escape(name string) string {
	var b strings.Builder
	for _, r := range name {
		if strings.ContainsRune(`*?[\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
