package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trinitycontents/reportgen/internal/assets"
	"github.com/trinitycontents/reportgen/internal/model"
)

// fakeBuilder records every append operation instead of rendering a document.
type fakeBuilder struct {
	paragraphs []string
	headings   []string
	bullets    []string
	captions   []string
	saved      []string
}

func (f *fakeBuilder) SetDefaultFont(string, float64) {}
func (f *fakeBuilder) SetHeaderImage(string) error    { return nil }
func (f *fakeBuilder) SetFooterImage(string) error    { return nil }
func (f *fakeBuilder) AddTitle(text string)           { f.headings = append(f.headings, text) }
func (f *fakeBuilder) AddHeading(text string)         { f.headings = append(f.headings, text) }
func (f *fakeBuilder) AddParagraph(text string)       { f.paragraphs = append(f.paragraphs, text) }
func (f *fakeBuilder) AddBullet(text string)          { f.bullets = append(f.bullets, text) }
func (f *fakeBuilder) AddSpacer()                     {}

func (f *fakeBuilder) AddCenteredImage(path, caption string) error {
	f.captions = append(f.captions, caption)
	return nil
}

func (f *fakeBuilder) AddPhotoTable(photos []CaptionedPhoto) error {
	for _, p := range photos {
		f.captions = append(f.captions, p.Caption)
	}
	return nil
}

func (f *fakeBuilder) Save(path string) error {
	f.saved = append(f.saved, path)
	return nil
}

// fakeSynth returns a deterministic path per title, or fails outright.
type fakeSynth struct {
	fail bool
}

func (s *fakeSynth) Synthesize(title, subtitle string) (string, error) {
	if s.fail {
		return "", errors.New("no canvas")
	}
	return "placeholder-" + title + "-" + subtitle + ".png", nil
}

func newTestComposer(t *testing.T, imagesRoot string, synth PhotoSynthesizer) (*Composer, *fakeBuilder) {
	t.Helper()
	fb := &fakeBuilder{}
	c := NewComposer(assets.NewResolver(imagesRoot), synth, t.TempDir(), func() (Builder, error) {
		return fb, nil
	})
	return c, fb
}

// writePhotos drops small but genuinely decodable images at the given paths.
func writePhotos(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, gg.NewContext(8, 6).SavePNG(p))
	}
}

func TestCompose_DefaultsForMissingFields(t *testing.T) {
	c, fb := newTestComposer(t, t.TempDir(), &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	assert.Contains(t, fb.paragraphs, "INSURED/POLICYHOLDER: Unknown")
	assert.Contains(t, fb.paragraphs, "ADDRESS: Unknown")
	assert.Contains(t, fb.paragraphs, "CLAIM #: PR0000")
	assert.Contains(t, fb.paragraphs, "TYPE OF LOSS: Unknown")
	assert.Contains(t, fb.paragraphs, "Unknown cause of loss")
	assert.Contains(t, fb.bullets, "Scope of work details not available")

	require.NotEmpty(t, fb.saved)
	assert.Equal(t, "FIRST INSPECTION REPORT - CLAIM# PR0000 - UNKNOWN - UNKNOWN.docx", filepath.Base(fb.saved[0]))
}

func TestCompose_FrontPhotoCaptionedImageOne(t *testing.T) {
	root := t.TempDir()
	writePhotos(t, filepath.Join(root, "front.jpg"))
	c, fb := newTestComposer(t, root, &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	assert.Contains(t, fb.paragraphs, "Front Photo:")
	require.NotEmpty(t, fb.captions)
	assert.Equal(t, "Image 1", fb.captions[0])
}

func TestCompose_FrontPlaceholderWhenNoPhoto(t *testing.T) {
	c, fb := newTestComposer(t, t.TempDir(), &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(map[string]string{
		model.FieldAddress: "12 Main St",
	}))
	require.NoError(t, err)

	require.NotEmpty(t, fb.captions)
	assert.Equal(t, "Image 1 - Placeholder", fb.captions[0])
}

func TestCompose_FrontFallsBackToTextWhenSynthesisFails(t *testing.T) {
	root := t.TempDir()
	// One room folder with a photo, so galleries still render while every
	// placeholder request fails.
	writePhotos(t, filepath.Join(root, "kitchen", "a.jpg"))
	c, fb := newTestComposer(t, root, &fakeSynth{fail: true})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	assert.Contains(t, fb.paragraphs, "Front Photo: [Image not available]")
	assert.NotContains(t, fb.paragraphs, "Front Photo:")
}

func TestCompose_ImageNumberingIsSequential(t *testing.T) {
	root := t.TempDir()
	writePhotos(t,
		filepath.Join(root, "front.jpg"),
		filepath.Join(root, "kitchen", "a.jpg"),
		filepath.Join(root, "kitchen", "b.jpg"),
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pantry"), 0o755))
	c, fb := newTestComposer(t, root, &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Image 1",
		"Image 2",
		"Image 3",
		"Image 4 - Placeholder",
	}, fb.captions)
	assert.Contains(t, fb.headings, "KITCHEN AREA")
	assert.Contains(t, fb.headings, "PANTRY AREA")
}

func TestCompose_UnreadablePhotoGetsNoNumber(t *testing.T) {
	root := t.TempDir()
	writePhotos(t,
		filepath.Join(root, "front.jpg"),
		filepath.Join(root, "kitchen", "a.jpg"),
		filepath.Join(root, "kitchen", "c.jpg"),
	)
	// b.jpg sorts between the two good photos but cannot be decoded.
	require.NoError(t, os.WriteFile(filepath.Join(root, "kitchen", "b.jpg"), []byte("img"), 0o644))
	c, fb := newTestComposer(t, root, &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"Image 1", "Image 2", "", "Image 3"}, fb.captions)
}

func TestCompose_RoomPhotosCappedAtFour(t *testing.T) {
	root := t.TempDir()
	writePhotos(t, filepath.Join(root, "front.jpg"))
	for i := 0; i < 6; i++ {
		writePhotos(t, filepath.Join(root, "kitchen", fmt.Sprintf("%d.jpg", i)))
	}
	c, fb := newTestComposer(t, root, &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"Image 1", "Image 2", "Image 3", "Image 4", "Image 5"}, fb.captions)
}

func TestCompose_SkipsRoomsWhenPlaceholderFails(t *testing.T) {
	// Empty images root: nine default rooms, all without photos, and a
	// synthesizer that cannot produce placeholders.
	c, fb := newTestComposer(t, t.TempDir(), &fakeSynth{fail: true})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	for _, h := range fb.headings {
		assert.False(t, strings.HasSuffix(h, " AREA"), "expected no room heading, got %q", h)
	}
	assert.Empty(t, fb.captions)
}

func TestCompose_ScopeOfWorkBullets(t *testing.T) {
	c, fb := newTestComposer(t, t.TempDir(), &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(map[string]string{
		model.FieldScopeOfWork: "1. Pack out contents<br>2. Clean all items<br>3. Replace drywall",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Pack out contents",
		"Clean all items",
		"Replace drywall",
	}, fb.bullets)
}

func TestCompose_ReservesFormattedAsCurrency(t *testing.T) {
	c, fb := newTestComposer(t, t.TempDir(), &fakeSynth{})

	_, err := c.Compose(context.Background(), model.NewClaimRecord(nil))
	require.NoError(t, err)

	var found bool
	for _, p := range fb.paragraphs {
		if strings.HasPrefix(p, "• Indemnity Work: Should not exceed $") {
			found = true
			assert.True(t, strings.HasSuffix(p, " plus HST"))
			assert.Contains(t, p, ",") // thousands separator: range starts at 15,000
			assert.Contains(t, p, ".") // two decimal places
		}
	}
	assert.True(t, found, "indemnity reserve line missing")
}

func TestCompose_FilenameCollisionGetsSuffix(t *testing.T) {
	c, fb := newTestComposer(t, t.TempDir(), &fakeSynth{})
	claim := model.NewClaimRecord(map[string]string{
		model.FieldClaimNumber:  "PR1234",
		model.FieldPolicyholder: "Jane Doe",
		model.FieldAddress:      "12 Main St, Town",
	})

	_, err := c.Compose(context.Background(), claim)
	require.NoError(t, err)
	_, err = c.Compose(context.Background(), claim)
	require.NoError(t, err)

	require.Len(t, fb.saved, 2)
	assert.Equal(t, "FIRST INSPECTION REPORT - CLAIM# PR1234 - JANE - 12_Main_St_Town.docx", filepath.Base(fb.saved[0]))
	assert.Equal(t, "FIRST INSPECTION REPORT - CLAIM# PR1234 - JANE - 12_Main_St_Town (2).docx", filepath.Base(fb.saved[1]))
}

func TestParseScopeItems(t *testing.T) {
	tests := []struct {
		name  string
		scope string
		want  []string
	}{
		{
			name:  "marker split",
			scope: "1. First item<br>2. Second item<br><br>3. Third item",
			want:  []string{"First item", "Second item", "Third item"},
		},
		{
			name:  "newline fallback",
			scope: "Clean carpets\nReplace drywall",
			want:  []string{"Clean carpets", "Replace drywall"},
		},
		{
			name:  "numeric prefix stripped",
			scope: "3. Replace drywall",
			want:  []string{"Replace drywall"},
		},
		{
			name:  "single unnumbered item",
			scope: "Full pack out",
			want:  []string{"Full pack out"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScopeItems(tt.scope))
		})
	}
}

func TestFilename(t *testing.T) {
	claim := model.NewClaimRecord(map[string]string{
		model.FieldClaimNumber:  "PR1234",
		model.FieldPolicyholder: "Jane Doe",
		model.FieldAddress:      "12 Main St, Town",
	})
	assert.Equal(t, "FIRST INSPECTION REPORT - CLAIM# PR1234 - JANE - 12_Main_St_Town.docx", Filename(claim))
}

func TestFilename_Defaults(t *testing.T) {
	assert.Equal(t,
		"FIRST INSPECTION REPORT - CLAIM# PR0000 - UNKNOWN - UNKNOWN.docx",
		Filename(model.NewClaimRecord(nil)))
}
