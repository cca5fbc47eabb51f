package media

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestChainFallsBackInOrder(t *testing.T) {
	chain := NewChain("", "https://cdn.example.com/broken.jpg", "/assets/projects/crime.jpg", "/assets/placeholder.jpeg")

	if chain.Primary() != "https://cdn.example.com/broken.jpg" {
		t.Fatalf("expected data path first, got %q", chain.Primary())
	}
	if got := chain.At(1); got != "/assets/projects/crime.jpg" {
		t.Fatalf("expected per-title fallback after one failure, got %q", got)
	}
	if got := chain.At(2); got != "/assets/placeholder.jpeg" {
		t.Fatalf("expected placeholder after two failures, got %q", got)
	}
	if got := chain.At(7); got != "/assets/placeholder.jpeg" {
		t.Fatalf("expected chain to stop at the placeholder, got %q", got)
	}
}

func TestChainOverrideAndDedup(t *testing.T) {
	chain := NewChain(" /assets/override.jpg ", "/assets/override.jpg", "", "/assets/placeholder.jpeg")

	if chain.Len() != 2 {
		t.Fatalf("expected 2 distinct sources, got %v", chain.Sources())
	}
	if chain.At(0) != "/assets/override.jpg" {
		t.Fatalf("expected override first, got %q", chain.At(0))
	}
	if chain.At(-3) != "/assets/override.jpg" {
		t.Fatalf("negative failures should clamp to the first source")
	}
}

func TestEmptyChain(t *testing.T) {
	chain := NewChain("", " ", "", "")
	if !chain.Empty() {
		t.Fatalf("expected empty chain")
	}
	if chain.At(0) != "" {
		t.Fatalf("expected empty source")
	}
}

func TestProberReadsLocalDimensions(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "pictures"), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 40, 25))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(filepath.Join(dir, "pictures", "urban.png"))
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	f.Close()

	p := NewProber(dir, "/assets")
	size, err := p.Probe("/assets/pictures/urban.png")
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if size.Width != 40 || size.Height != 25 {
		t.Fatalf("unexpected size %+v", size)
	}

	again, err := p.Probe("/assets/pictures/urban.png")
	if err != nil || again != size {
		t.Fatalf("expected cached size, got %+v (%v)", again, err)
	}
}

func TestProberRejectsRemoteAndEscapingPaths(t *testing.T) {
	p := NewProber(t.TempDir(), "/assets")

	for _, src := range []string{"https://example.com/a.png", "/assets/../secret.png", "/other/a.png"} {
		if _, err := p.Probe(src); !errors.Is(err, ErrNotLocal) {
			t.Fatalf("expected ErrNotLocal for %q, got %v", src, err)
		}
	}
}
