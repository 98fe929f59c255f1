package integrations

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultCoverWidth  = 600
	DefaultCoverHeight = 900
	coverQuality       = 85
)

// CoverStore copies cover images into a directory the catalog can refer
// to, downscaled to fit MaxWidth x MaxHeight. The catalog only keeps the
// returned path; files are never deleted here.
type CoverStore struct {
	dir       string
	MaxWidth  int
	MaxHeight int
}

func NewCoverStore(dir string) *CoverStore {
	return &CoverStore{
		dir:       dir,
		MaxWidth:  DefaultCoverWidth,
		MaxHeight: DefaultCoverHeight,
	}
}

func (s *CoverStore) Dir() string {
	return s.dir
}

// Import decodes the image at src and writes a JPEG copy into the store,
// returning its path.
func (s *CoverStore) Import(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open cover: %w", err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return "", fmt.Errorf("failed to decode cover: %w", err)
	}

	bounds := img.Bounds()
	width, height := s.calculateDimensions(bounds.Dx(), bounds.Dy())
	if width != bounds.Dx() || height != bounds.Dy() {
		img = resize(img, width, height)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create covers directory: %w", err)
	}

	dst := filepath.Join(s.dir, uuid.NewString()+".jpg")
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create cover file: %w", err)
	}

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: coverQuality}); err != nil {
		out.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to encode cover: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	return dst, nil
}

// calculateDimensions fits width x height inside the store bounds keeping
// the aspect ratio. Images never grow.
func (s *CoverStore) calculateDimensions(width, height int) (int, int) {
	if width <= s.MaxWidth && height <= s.MaxHeight {
		return width, height
	}

	widthScale := float64(s.MaxWidth) / float64(width)
	heightScale := float64(s.MaxHeight) / float64(height)

	scale := widthScale
	if heightScale < widthScale {
		scale = heightScale
	}

	return int(float64(width) * scale), int(float64(height) * scale)
}

func resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}
