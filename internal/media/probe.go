package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/webp"
)

// ErrNotLocal is returned for sources that are not served from the assets
// directory.
var ErrNotLocal = errors.New("image is not a local asset")

// Size is the pixel size of an image.
type Size struct {
	Width  int
	Height int
}

type probeEntry struct {
	size    Size
	modTime time.Time
}

// Prober reads image dimensions of files under the assets directory and
// caches them until the file changes.
type Prober struct {
	dir     string
	urlPath string

	mu    sync.Mutex
	cache map[string]probeEntry
}

// NewProber creates a Prober for files in dir that are served under urlPath.
func NewProber(dir, urlPath string) *Prober {
	return &Prober{
		dir:     dir,
		urlPath: "/" + strings.Trim(urlPath, "/"),
		cache:   make(map[string]probeEntry),
	}
}

// Probe returns the dimensions of the asset behind src.
func (p *Prober) Probe(src string) (Size, error) {
	path, err := p.localPath(src)
	if err != nil {
		return Size{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Size{}, err
	}

	p.mu.Lock()
	entry, ok := p.cache[path]
	p.mu.Unlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.size, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	size := Size{Width: cfg.Width, Height: cfg.Height}

	p.mu.Lock()
	p.cache[path] = probeEntry{size: size, modTime: info.ModTime()}
	p.mu.Unlock()

	return size, nil
}

func (p *Prober) localPath(src string) (string, error) {
	if p == nil || p.dir == "" {
		return "", ErrNotLocal
	}
	prefix := p.urlPath + "/"
	if !strings.HasPrefix(src, prefix) {
		return "", ErrNotLocal
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(src, prefix)))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", ErrNotLocal
	}
	return filepath.Join(p.dir, rel), nil
}
