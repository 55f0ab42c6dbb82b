// Package report assembles one inspection report per claim from the claim's
// fields and its resolved photo assets.
package report

// CaptionedPhoto is one cell of a room photo table.
type CaptionedPhoto struct {
	Path    string
	Caption string
}

// Builder is the document sink a report is appended into. Content is
// accumulated in memory; nothing touches disk until Save.
type Builder interface {
	// SetDefaultFont sets the document-wide font for plain text.
	SetDefaultFont(family string, sizePoints float64)

	// SetHeaderImage places an image in the document's page header,
	// centered and scaled to the standard banner width.
	SetHeaderImage(path string) error

	// SetFooterImage places an image in the document's page footer.
	SetFooterImage(path string) error

	// AddTitle appends the centered top-level report heading.
	AddTitle(text string)

	// AddHeading appends a section sub-heading.
	AddHeading(text string)

	// AddParagraph appends a plain paragraph.
	AddParagraph(text string)

	// AddBullet appends one bulleted list entry.
	AddBullet(text string)

	// AddCenteredImage appends a centered photo at the standard photo size
	// with a caption directly beneath it.
	AddCenteredImage(path, caption string) error

	// AddPhotoTable appends a two-column table of captioned photos. A photo
	// that cannot be read degrades to a textual marker in its cell and does
	// not fail the table.
	AddPhotoTable(photos []CaptionedPhoto) error

	// AddSpacer appends vertical spacing between sections.
	AddSpacer()

	// Save persists the fully built document to path in a single write.
	Save(path string) error
}
