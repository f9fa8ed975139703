package model

import "strings"

// Sentinel values substituted when a field cannot be extracted.
// These are data, not errors: downstream consumers must expect them.
const (
	NameUnknown     = "Unknown"
	AddressNA       = "N/A"
	CategoryGeneric = "Agricultural Vendor"
)

// VendorRecord is the canonical unit of the discovery pipeline.
// Records are immutable once produced by a source adapter; the
// aggregator filters and selects but never mutates fields.
type VendorRecord struct {
	ID             string   `json:"id"`                        // Source-scoped identifier, not globally unique
	Name           string   `json:"name"`                      // NameUnknown when extraction failed
	Category       string   `json:"category"`                  // Shop tag or CategoryGeneric for scraped records
	Latitude       *float64 `json:"latitude,omitempty"`        // Present only for coordinate-aware sources
	Longitude      *float64 `json:"longitude,omitempty"`
	Address        string   `json:"address"`                   // AddressNA when missing/unparsed
	Phone          string   `json:"phone,omitempty"`           // Possibly a comma-joined list of matches
	Website        string   `json:"website,omitempty"`
	RegistrationID string   `json:"registration_id,omitempty"` // Tax/registration identifier, frequently absent
	SourceURL      string   `json:"source_url,omitempty"`      // Query or record URL this vendor came from
}

// IdentityKey returns the deduplication identity: the case-insensitive
// concatenation of name and address. Two records with the same key are
// the same vendor regardless of which source produced them.
func (v VendorRecord) IdentityKey() string {
	return strings.ToLower(v.Name + v.Address)
}

// Contactable reports whether the record is worth listing in the
// document view: a real name, a real address, and at least one way to
// reach the vendor. The table view has no such filter.
func (v VendorRecord) Contactable() bool {
	hasName := v.Name != "" && v.Name != NameUnknown
	hasAddress := v.Address != "" && v.Address != AddressNA
	hasContact := v.Phone != "" || v.Website != ""
	return hasName && hasAddress && hasContact
}

// HasCoordinates reports whether both latitude and longitude are set.
func (v VendorRecord) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}
