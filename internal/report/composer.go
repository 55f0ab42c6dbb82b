package report

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"

	"baliance.com/gooxml/common"
	"github.com/rs/zerolog"
	"github.com/trinitycontents/reportgen/internal/assets"
	"github.com/trinitycontents/reportgen/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const maxRoomPhotos = 4

// PhotoSynthesizer produces stand-in images for photos that could not be
// resolved on disk.
type PhotoSynthesizer interface {
	Synthesize(title, subtitle string) (string, error)
}

// Composer builds one report document per claim record.
type Composer struct {
	resolver   *assets.Resolver
	synth      PhotoSynthesizer
	outputDir  string
	newBuilder func() (Builder, error)
	printer    *message.Printer
	used       map[string]int
}

// NewComposer creates a composer writing documents into outputDir, using
// newBuilder for each document so one claim's content never leaks into the
// next.
func NewComposer(resolver *assets.Resolver, synth PhotoSynthesizer, outputDir string, newBuilder func() (Builder, error)) *Composer {
	return &Composer{
		resolver:   resolver,
		synth:      synth,
		outputDir:  outputDir,
		newBuilder: newBuilder,
		printer:    message.NewPrinter(language.English),
		used:       map[string]int{},
	}
}

// Compose builds and saves the report for one claim, returning the path of
// the written document. The document is built fully in memory first; a
// failed compose leaves no partial file behind.
func (c *Composer) Compose(ctx context.Context, claim model.ClaimRecord) (string, error) {
	log := zerolog.Ctx(ctx)

	b, err := c.newBuilder()
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}

	set := c.resolver.Resolve()

	if set.Header != "" {
		if err := b.SetHeaderImage(set.Header); err != nil {
			log.Error().Err(err).Str("claim", claim.ClaimNumber()).Msg("adding header image")
		} else {
			b.AddSpacer()
		}
	}

	b.SetDefaultFont("Arial", 10)
	b.AddTitle("FIRST INSPECTION REPORT")

	c.addInsuredInfo(b, claim)
	if err := c.addFrontPhoto(ctx, b, claim, set.Front); err != nil {
		return "", err
	}
	c.addCauseOfLoss(b, claim)
	c.addScopeOfWork(b, claim)
	c.addRecommendedReserves(b)
	c.addConclusion(b)
	c.addRoomPhotos(ctx, b, claim, set.Rooms)

	if set.Footer != "" {
		b.AddSpacer()
		if err := b.SetFooterImage(set.Footer); err != nil {
			log.Error().Err(err).Str("claim", claim.ClaimNumber()).Msg("adding footer image")
		}
	}

	path := filepath.Join(c.outputDir, c.uniqueFilename(claim))
	if err := b.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// uniqueFilename returns the derived filename for claim, suffixed with a
// counter when an earlier claim in the same run already produced it.
// Files from previous runs are overwritten.
func (c *Composer) uniqueFilename(claim model.ClaimRecord) string {
	name := Filename(claim)
	c.used[name]++
	if n := c.used[name]; n > 1 {
		ext := filepath.Ext(name)
		name = fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n, ext)
	}
	return name
}

func (c *Composer) addInsuredInfo(b Builder, claim model.ClaimRecord) {
	lines := []struct{ label, field, fallback string }{
		{"INSURED/POLICYHOLDER", model.FieldPolicyholder, model.DefaultValue},
		{"ADDRESS", model.FieldAddress, model.DefaultValue},
		{"INSURER", model.FieldInsurer, model.DefaultValue},
		{"CLAIM #", model.FieldClaimNumber, model.DefaultClaimNumber},
		{"ADJUSTER/ CLAIM REP", model.FieldAdjuster, model.DefaultValue},
		{"DATE OF INSPECTION", model.FieldInspectionDate, model.DefaultValue},
		{"DATE OF LOSS", model.FieldLossDate, model.DefaultValue},
		{"DATE OF REPORT", model.FieldReportDate, model.DefaultValue},
		{"TYPE OF LOSS", model.FieldLossType, model.DefaultValue},
	}
	for _, l := range lines {
		b.AddParagraph(fmt.Sprintf("%s: %s", l.label, claim.Get(l.field, l.fallback)))
	}
	b.AddSpacer()
}

// addFrontPhoto renders the front exterior shot, captioned "Image 1". A
// missing photo degrades to a placeholder, and a failed placeholder degrades
// to a textual marker. An unreadable real photo fails the row.
func (c *Composer) addFrontPhoto(ctx context.Context, b Builder, claim model.ClaimRecord, front string) error {
	if front != "" {
		b.AddParagraph("Front Photo:")
		if err := b.AddCenteredImage(front, "Image 1"); err != nil {
			return fmt.Errorf("front photo: %w", err)
		}
		b.AddSpacer()
		return nil
	}

	placeholder, err := c.synth.Synthesize("Front of House", claim.Get(model.FieldAddress, model.DefaultValue))
	if err == nil {
		b.AddParagraph("Front Photo:")
		err = b.AddCenteredImage(placeholder, "Image 1 - Placeholder")
	}
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("claim", claim.ClaimNumber()).Msg("front photo placeholder")
		b.AddParagraph("Front Photo: [Image not available]")
	}
	b.AddSpacer()
	return nil
}

func (c *Composer) addCauseOfLoss(b Builder, claim model.ClaimRecord) {
	b.AddHeading("CAUSE OF LOSS:")
	b.AddParagraph(claim.Get(model.FieldLossCause, "Unknown cause of loss"))
	b.AddSpacer()
}

func (c *Composer) addScopeOfWork(b Builder, claim model.ClaimRecord) {
	b.AddHeading("SCOPE OF WORK:")
	b.AddParagraph("The following is a brief outline of the work to be completed on the contents portion of this claim.")
	b.AddSpacer()

	if !claim.Has(model.FieldScopeOfWork) {
		b.AddBullet("Scope of work details not available")
		b.AddSpacer()
		return
	}
	for _, item := range ParseScopeItems(claim.Get(model.FieldScopeOfWork, "")) {
		b.AddBullet(item)
	}
	b.AddSpacer()
}

// ParseScopeItems splits free-form scope text into discrete work items.
// The text is split on the <br> marker first; if that yields at most one
// item, it is split on newlines instead. A leading "1." style prefix is
// stripped from each item.
func ParseScopeItems(scope string) []string {
	items := splitNonEmpty(scope, "<br>")
	if len(items) <= 1 {
		items = splitNonEmpty(scope, "\n")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if i := strings.Index(item, "."); i >= 0 {
			item = strings.TrimSpace(item[i+1:])
		}
		out = append(out, item)
	}
	return out
}

func splitNonEmpty(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// addRecommendedReserves writes the reserves section. The figures are
// placeholder estimates drawn at random per report, not derived from claim
// data.
func (c *Composer) addRecommendedReserves(b Builder) {
	indemnity := randBetween(15000, 30000)
	pricingExpense := randBetween(3000, 6000)
	totalReplacement := randBetween(3000, 10000)

	b.AddHeading("RECOMMENDED RESERVES FOR TRINITY'S INVOLVEMENT:")
	b.AddParagraph("The estimated cost for Trinity's involvement is as follows:")
	b.AddParagraph(c.printer.Sprintf("• Indemnity Work: Should not exceed $%.2f plus HST", float64(indemnity)))
	b.AddParagraph("Our actual cost will be adjusted once the exact scope of approved work is known. The recommended estimate is only based on visual inspection for reserves setting purposes.")
	b.AddSpacer()
	b.AddParagraph(c.printer.Sprintf("• Trinity Listing & Pricing Expense Reserve: Should not exceed $%.2f plus HST", float64(pricingExpense)))
	b.AddSpacer()

	b.AddHeading("RECOMMENDED RESERVES FOR THE TOTAL CONTENTS LOSS:")
	b.AddParagraph(c.printer.Sprintf("Based on a visual inspection of the extent of non-salvageable items on the main floor, we believe that the total replacement cost for the non-salvageable items should not exceed $%.2f plus HST.", float64(totalReplacement)))
	b.AddSpacer()
}

func (c *Composer) addConclusion(b Builder) {
	b.AddHeading("CONCLUSION:")
	b.AddParagraph("Once our scope of work is approved, we can attend and begin the pack out process.")
	b.AddSpacer()
	b.AddParagraph("Thank You,")
	b.AddSpacer()
	b.AddParagraph("Mo Waez")
	b.AddParagraph("Trinity Contents Management")
	b.AddParagraph("mo@trinitycontents.com")
	b.AddParagraph("(647) 613-2246")
	b.AddSpacer()
}

// addRoomPhotos emits one gallery per room. Photo captions continue the
// running image counter started by the front photo at 1; a photo that cannot
// be decoded keeps its table cell but is assigned no number. A room with no
// photos gets a single placeholder; if even that fails, the room is skipped
// without a heading.
func (c *Composer) addRoomPhotos(ctx context.Context, b Builder, claim model.ClaimRecord, rooms []assets.Room) {
	log := zerolog.Ctx(ctx)
	counter := 2

	for _, room := range rooms {
		photos := make([]CaptionedPhoto, 0, maxRoomPhotos)
		for _, p := range room.Photos {
			if len(photos) == maxRoomPhotos {
				break
			}
			photo := CaptionedPhoto{Path: p}
			if photoReadable(p) {
				photo.Caption = fmt.Sprintf("Image %d", counter)
				counter++
			} else {
				log.Warn().Str("claim", claim.ClaimNumber()).Str("photo", p).Msg("unreadable room photo")
			}
			photos = append(photos, photo)
		}

		if len(photos) == 0 {
			path, err := c.synth.Synthesize(capitalize(room.Name)+" Area", claim.Get(model.FieldAddress, model.DefaultValue))
			if err != nil {
				log.Error().Err(err).Str("claim", claim.ClaimNumber()).Str("room", room.Name).Msg("room placeholder")
				continue
			}
			photos = append(photos, CaptionedPhoto{Path: path, Caption: fmt.Sprintf("Image %d - Placeholder", counter)})
			counter++
		}

		b.AddHeading(roomHeading(room.Name))
		if err := b.AddPhotoTable(photos); err != nil {
			log.Error().Err(err).Str("claim", claim.ClaimNumber()).Str("room", room.Name).Msg("room photo table")
		}
		b.AddSpacer()
	}
}

// photoReadable reports whether path holds an image the document backend can
// embed, using the same decoder the backend does.
func photoReadable(path string) bool {
	_, err := common.ImageFromFile(path)
	return err == nil
}

// roomHeading turns a folder name like "living_room" into "LIVING ROOM AREA".
func roomHeading(room string) string {
	return strings.ToUpper(strings.ReplaceAll(room, "_", " ")) + " AREA"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func randBetween(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}
