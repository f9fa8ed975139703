// Package extract parses phone numbers and addresses out of the
// free-text detail blobs scraped listing sites expose.
package extract

import (
	"regexp"
	"strings"

	"github.com/tharunlokeshu/agriscout/internal/model"
)

// phonePattern is the ordered set of phone alternatives applied to
// listing blobs. The alternatives deliberately overlap (a bare
// 10-digit form coexists with the grouped forms), so a single number
// can surface as more than one fragment; callers get everything that
// matched, joined, and decide what to do with it.
var phonePattern = regexp.MustCompile(
	`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}` +
		`|\d{10}` +
		`|\d{4}[-.\s]\d{6}` +
		`|\d{3}[-.\s]\d{7}` +
		`|\d{5}[-.\s]\d{5}` +
		`|\d{4}[-.\s]\d{3}[-.\s]\d{3}` +
		`|\d{3}[-.\s]\d{3}[-.\s]\d{4}` +
		`|\d{2}[-.\s]\d{8}` +
		`|\d{1}[-.\s]\d{9}` +
		`|\d{10,12}`)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	lonePeriod    = regexp.MustCompile(`\s*\.\s*`)
)

// Fields is the result of splitting a listing blob into its parts.
type Fields struct {
	Phone   string
	Address string
}

// ExtractFields pulls a phone number and a cleaned address out of a
// free-text listing blob that mixes both with separators. It is a
// total function: any input, including the empty string, yields a
// Fields value with sentinels standing in for whatever was missing.
func ExtractFields(blob string) Fields {
	if strings.TrimSpace(blob) == "" {
		return Fields{Phone: "", Address: model.AddressNA}
	}

	matches := phonePattern.FindAllString(blob, -1)
	if len(matches) == 0 {
		return Fields{
			Phone:   "",
			Address: collapseWhitespace(blob),
		}
	}

	// Strip every phone match out of the blob, then clean up the
	// separators the sources leave behind: the middle dot one site
	// uses between fields, and stray lone periods.
	address := phonePattern.ReplaceAllString(blob, "")
	address = collapseWhitespace(address)
	address = strings.ReplaceAll(address, "·", "")
	address = strings.TrimSpace(lonePeriod.ReplaceAllString(address, ", "))

	return Fields{
		Phone:   strings.Join(matches, ", "),
		Address: address,
	}
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
