// Package aggregate merges per-source vendor lists into one
// deduplicated, capped result. It is pure: no I/O, no side effects,
// deterministic for a given input.
package aggregate

import "github.com/tharunlokeshu/agriscout/internal/model"

// DefaultMaxResults bounds the merged list when the caller does not
// supply a cap.
const DefaultMaxResults = 200

// Merge concatenates the per-source lists in the order given (which is
// the source priority order), deduplicates by identity key with the
// first occurrence winning, and truncates to maxResults. Truncation
// happens after deduplication so later sources are not unfairly
// squeezed out by duplicates from earlier ones.
func Merge(sources [][]model.VendorRecord, maxResults int) []model.VendorRecord {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	var combined []model.VendorRecord
	for _, list := range sources {
		combined = append(combined, list...)
	}

	deduped := Dedupe(combined)
	if len(deduped) > maxResults {
		deduped = deduped[:maxResults]
	}
	return deduped
}

// Dedupe removes records whose identity key (case-insensitive
// name+address) was already seen, preserving insertion order.
// Idempotent: Dedupe(Dedupe(x)) == Dedupe(x).
func Dedupe(records []model.VendorRecord) []model.VendorRecord {
	seen := make(map[string]bool, len(records))
	unique := make([]model.VendorRecord, 0, len(records))

	for _, r := range records {
		key := r.IdentityKey()
		if !seen[key] {
			seen[key] = true
			unique = append(unique, r)
		}
	}
	return unique
}
