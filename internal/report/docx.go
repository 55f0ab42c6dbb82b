package report

import (
	"fmt"
	"path/filepath"

	"baliance.com/gooxml/common"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"
)

const (
	bannerWidth = 6 * measurement.Inch

	photoWidth  = 3.25 * measurement.Inch
	photoHeight = 2.25 * measurement.Inch

	tableCellWidth = 3.5 * measurement.Inch

	headingSizePoints = 13
)

// DocxBuilder renders a report as a Word document via gooxml. The document
// lives entirely in memory until Save.
type DocxBuilder struct {
	doc        *document.Document
	fontFamily string
	fontSize   measurement.Distance
}

// NewDocxBuilder returns a Builder backed by a fresh empty document.
func NewDocxBuilder() (Builder, error) {
	return &DocxBuilder{doc: document.New()}, nil
}

func (b *DocxBuilder) SetDefaultFont(family string, sizePoints float64) {
	b.fontFamily = family
	b.fontSize = measurement.Distance(sizePoints) * measurement.Point
}

// styleRun applies the document-wide font to a run.
func (b *DocxBuilder) styleRun(run document.Run) {
	if b.fontFamily != "" {
		run.Properties().SetFontFamily(b.fontFamily)
	}
	if b.fontSize > 0 {
		run.Properties().SetSize(b.fontSize)
	}
}

func (b *DocxBuilder) SetHeaderImage(path string) error {
	img, err := common.ImageFromFile(path)
	if err != nil {
		return fmt.Errorf("header image: %w", err)
	}

	hdr := b.doc.AddHeader()
	ref, err := hdr.AddImage(img)
	if err != nil {
		return fmt.Errorf("header image: %w", err)
	}

	para := hdr.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	if err := placeDrawing(para, ref, img, bannerWidth); err != nil {
		return fmt.Errorf("header image: %w", err)
	}
	b.doc.BodySection().SetHeader(hdr, wml.ST_HdrFtrDefault)
	return nil
}

func (b *DocxBuilder) SetFooterImage(path string) error {
	img, err := common.ImageFromFile(path)
	if err != nil {
		return fmt.Errorf("footer image: %w", err)
	}

	ftr := b.doc.AddFooter()
	ref, err := ftr.AddImage(img)
	if err != nil {
		return fmt.Errorf("footer image: %w", err)
	}

	para := ftr.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	if err := placeDrawing(para, ref, img, bannerWidth); err != nil {
		return fmt.Errorf("footer image: %w", err)
	}
	b.doc.BodySection().SetFooter(ftr, wml.ST_HdrFtrDefault)
	return nil
}

func (b *DocxBuilder) AddTitle(text string) {
	para := b.doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	run := para.AddRun()
	run.AddText(text)
	if b.fontFamily != "" {
		run.Properties().SetFontFamily(b.fontFamily)
	}
	run.Properties().SetBold(true)
	run.Properties().SetSize(16 * measurement.Point)
}

func (b *DocxBuilder) AddHeading(text string) {
	para := b.doc.AddParagraph()
	run := para.AddRun()
	run.AddText(text)
	if b.fontFamily != "" {
		run.Properties().SetFontFamily(b.fontFamily)
	}
	run.Properties().SetBold(true)
	run.Properties().SetSize(headingSizePoints * measurement.Point)
}

func (b *DocxBuilder) AddParagraph(text string) {
	para := b.doc.AddParagraph()
	run := para.AddRun()
	run.AddText(text)
	b.styleRun(run)
}

func (b *DocxBuilder) AddBullet(text string) {
	para := b.doc.AddParagraph()
	run := para.AddRun()
	run.AddText("• " + text)
	b.styleRun(run)
}

func (b *DocxBuilder) AddCenteredImage(path, caption string) error {
	img, err := common.ImageFromFile(path)
	if err != nil {
		return fmt.Errorf("read image %s: %w", filepath.Base(path), err)
	}
	ref, err := b.doc.AddImage(img)
	if err != nil {
		return fmt.Errorf("add image %s: %w", filepath.Base(path), err)
	}

	para := b.doc.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)
	inline, err := para.AddRun().AddDrawingInline(ref)
	if err != nil {
		return fmt.Errorf("place image %s: %w", filepath.Base(path), err)
	}
	inline.SetSize(photoWidth, photoHeight)

	capPara := b.doc.AddParagraph()
	capPara.Properties().SetAlignment(wml.ST_JcCenter)
	capRun := capPara.AddRun()
	capRun.AddText(caption)
	b.styleRun(capRun)
	return nil
}

func (b *DocxBuilder) AddPhotoTable(photos []CaptionedPhoto) error {
	if len(photos) == 0 {
		return nil
	}

	table := b.doc.AddTable()
	table.Properties().SetWidthPercent(100)

	var row document.Row
	for i, photo := range photos {
		if i%2 == 0 {
			row = table.AddRow()
		}
		cell := row.AddCell()
		cell.Properties().SetWidth(tableCellWidth)
		b.fillPhotoCell(cell, photo)
	}
	return nil
}

// fillPhotoCell places one photo and its caption into a table cell. An
// unreadable image leaves a textual marker instead.
func (b *DocxBuilder) fillPhotoCell(cell document.Cell, photo CaptionedPhoto) {
	para := cell.AddParagraph()
	para.Properties().SetAlignment(wml.ST_JcCenter)

	img, err := common.ImageFromFile(photo.Path)
	if err == nil {
		var ref common.ImageRef
		if ref, err = b.doc.AddImage(img); err == nil {
			var inline document.InlineDrawing
			if inline, err = para.AddRun().AddDrawingInline(ref); err == nil {
				inline.SetSize(photoWidth, photoHeight)
			}
		}
	}
	if err != nil {
		run := para.AddRun()
		run.AddText("Image not available - " + filepath.Base(photo.Path))
		b.styleRun(run)
		return
	}

	capPara := cell.AddParagraph()
	capPara.Properties().SetAlignment(wml.ST_JcCenter)
	capRun := capPara.AddRun()
	capRun.AddText(photo.Caption)
	b.styleRun(capRun)
}

func (b *DocxBuilder) AddSpacer() {
	b.doc.AddParagraph()
}

func (b *DocxBuilder) Save(path string) error {
	if err := b.doc.SaveToFile(path); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// placeDrawing inserts ref into para scaled to the given width, keeping the
// source aspect ratio.
func placeDrawing(para document.Paragraph, ref common.ImageRef, img common.Image, width measurement.Distance) error {
	inline, err := para.AddRun().AddDrawingInline(ref)
	if err != nil {
		return err
	}

	height := measurement.Distance(photoHeight)
	if img.Size.X > 0 {
		height = width * measurement.Distance(img.Size.Y) / measurement.Distance(img.Size.X)
	}
	inline.SetSize(width, height)
	return nil
}
