// Package render turns merged vendor lists into the two document
// views: a markdown-style text table and a PDF report.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tharunlokeshu/agriscout/internal/model"
)

const (
	tableColumns   = "| ID | Name | Type | Latitude | Longitude | Address | Phone | Website | GST/ID | Source URL |"
	tableSeparator = "|----|------|------|----------|-----------|---------|-------|---------|--------|-----------|"
)

// Table renders the vendor list as a plain text table. Every record is
// shown, contactable or not; the trailing summary line carries the
// total count. The output ends without a newline.
func Table(location string, vendors []model.VendorRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Agricultural Vendors in %s\n\n", location)
	b.WriteString(tableColumns)
	b.WriteString("\n")
	b.WriteString(tableSeparator)

	for i, v := range vendors {
		fmt.Fprintf(&b, "\n| %d | %s | %s | %s | %s | %s | %s | %s | %s | %s |",
			i+1, v.Name, v.Category,
			formatCoord(v.Latitude), formatCoord(v.Longitude),
			v.Address, v.Phone, v.Website, v.RegistrationID, v.SourceURL)
	}

	fmt.Fprintf(&b, "\n\n✅ %d agricultural vendors found in %s.", len(vendors), location)
	return b.String()
}

// formatCoord renders a coordinate to five decimals, or empty when
// the record has none.
func formatCoord(c *float64) string {
	if c == nil {
		return ""
	}
	return strconv.FormatFloat(*c, 'f', 5, 64)
}
