// Package placeholder synthesizes stand-in images for photos that could not
// be found on disk: a bordered gray canvas with a centered title, subtitle
// and camera glyph.
package placeholder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const (
	canvasWidth  = 800
	canvasHeight = 600

	titleSize    = 40
	subtitleSize = 30
)

// Common locations for the preferred fonts. Missing fonts degrade to the
// embedded Go faces, never to a failure.
var (
	boldFontPaths = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/Library/Fonts/Arial Bold.ttf",
		"C:\\Windows\\Fonts\\arialbd.ttf",
	}
	regularFontPaths = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/Library/Fonts/Arial.ttf",
		"C:\\Windows\\Fonts\\arial.ttf",
	}
)

// Synthesizer generates placeholder images into a temporary directory owned
// by one batch run. Results are memoized by (title, subtitle): repeated
// requests return the same file without redrawing.
type Synthesizer struct {
	dir   string
	cache *gocache.Cache
}

// NewSynthesizer creates a synthesizer with a fresh temporary directory.
func NewSynthesizer() (*Synthesizer, error) {
	dir, err := os.MkdirTemp("", "reportgen-placeholders-")
	if err != nil {
		return nil, fmt.Errorf("create placeholder dir: %w", err)
	}
	return &Synthesizer{
		dir:   dir,
		cache: gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// Close deletes every placeholder generated during the run.
func (s *Synthesizer) Close() error {
	return os.RemoveAll(s.dir)
}

// Synthesize returns the path of a placeholder image for the given texts,
// drawing and persisting it on first use.
func (s *Synthesizer) Synthesize(title, subtitle string) (string, error) {
	key := title + "\x00" + subtitle
	if cached, found := s.cache.Get(key); found {
		return cached.(string), nil
	}

	path := filepath.Join(s.dir, uuid.NewString()+".png")
	if err := s.draw(title, subtitle, path); err != nil {
		return "", fmt.Errorf("synthesize placeholder %q: %w", title, err)
	}

	s.cache.Set(key, path, gocache.NoExpiration)
	return path, nil
}

func (s *Synthesizer) draw(title, subtitle, path string) error {
	dc := gg.NewContext(canvasWidth, canvasHeight)

	dc.SetRGB255(230, 230, 230)
	dc.Clear()

	// Border inset 10px.
	dc.SetRGB255(180, 180, 180)
	dc.SetLineWidth(3)
	dc.DrawRectangle(10, 10, canvasWidth-20, canvasHeight-20)
	dc.Stroke()

	titleFace, err := loadFace(boldFontPaths, gobold.TTF, titleSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(titleFace)
	dc.SetRGB255(100, 100, 100)
	dc.DrawStringAnchored(title, canvasWidth/2, canvasHeight/3, 0.5, 0.5)

	subtitleFace, err := loadFace(regularFontPaths, goregular.TTF, subtitleSize)
	if err != nil {
		return err
	}
	dc.SetFontFace(subtitleFace)
	dc.SetRGB255(150, 150, 150)
	dc.DrawStringAnchored(subtitle, canvasWidth/2, canvasHeight/2, 0.5, 0.5)

	// Camera glyph: circle with a centered X below the subtitle.
	cx, cy := float64(canvasWidth)/2, float64(canvasHeight)/1.7
	dc.SetRGB255(180, 180, 180)
	dc.SetLineWidth(3)
	dc.DrawCircle(cx, cy, 40)
	dc.Stroke()
	dc.DrawLine(cx-25, cy-25, cx+25, cy+25)
	dc.Stroke()
	dc.DrawLine(cx-25, cy+25, cx+25, cy-25)
	dc.Stroke()

	return dc.SavePNG(path)
}

// loadFace tries the system font paths in order and falls back to the
// embedded Go font data.
func loadFace(paths []string, fallbackTTF []byte, points float64) (font.Face, error) {
	for _, p := range paths {
		if face, err := gg.LoadFontFace(p, points); err == nil {
			return face, nil
		}
	}

	parsed, err := opentype.Parse(fallbackTTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("build font face: %w", err)
	}
	return face, nil
}
