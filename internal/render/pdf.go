package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/tharunlokeshu/agriscout/internal/model"
)

// PDF renders the vendor list as a downloadable report. Unlike the
// text table it lists only contactable vendors, one block per vendor,
// with absent fields omitted rather than shown as placeholders.
func PDF(location string, vendors []model.VendorRecord, generatedAt time.Time) ([]byte, error) {
	return renderPDF(location, vendors, generatedAt, true)
}

// renderPDF carries a compression switch so tests can read the content
// streams as plain text.
func renderPDF(location string, vendors []model.VendorRecord, generatedAt time.Time, compress bool) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(compress)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	// Pin the metadata clock so identical input yields identical bytes
	doc.SetCreationDate(generatedAt)
	doc.SetModificationDate(generatedAt)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr(fmt.Sprintf("Agricultural Vendors in %s", location)), "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, tr("Generated on: "+generatedAt.Format("02 Jan 2006 15:04:05")), "", 1, "L", false, 0, "")
	doc.Ln(4)

	shown := 0
	for _, v := range vendors {
		if !v.Contactable() {
			continue
		}
		shown++

		doc.SetFont("Helvetica", "BU", 14)
		doc.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", shown, v.Name)), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 10)

		if v.Category != "" && v.Category != model.CategoryGeneric {
			doc.CellFormat(0, 6, tr("Type: "+v.Category), "", 1, "L", false, 0, "")
		}
		if v.Address != "" && v.Address != model.AddressNA {
			doc.MultiCell(0, 6, tr("Address: "+v.Address), "", "L", false)
		}
		if v.Phone != "" {
			doc.CellFormat(0, 6, tr("Phone: "+v.Phone), "", 1, "L", false, 0, "")
		}
		if v.Website != "" {
			doc.CellFormat(0, 6, tr("Website: "+v.Website), "", 1, "L", false, 0, "")
		}
		if v.HasCoordinates() {
			doc.CellFormat(0, 6, tr(fmt.Sprintf("Coordinates: %.5f, %.5f", *v.Latitude, *v.Longitude)), "", 1, "L", false, 0, "")
		}
		if v.RegistrationID != "" {
			doc.CellFormat(0, 6, tr("GST/ID: "+v.RegistrationID), "", 1, "L", false, 0, "")
		}
		if v.SourceURL != "" {
			doc.SetTextColor(0, 0, 200)
			doc.WriteLinkString(6, "View Location", v.SourceURL)
			doc.Ln(6)
			doc.SetTextColor(0, 0, 0)
		}
		doc.Ln(4)
	}

	doc.Ln(4)
	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 8, tr(fmt.Sprintf("Total Vendors Found: %d", shown)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
