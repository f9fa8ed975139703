package source

import "net/url"

const mapsSearchBaseURL = "https://www.google.com/maps/search/"

// MapsProfile targets the Google Maps search results page. Selector
// lists span several generations of the Maps DOM; the first match
// wins. Maps has no dedicated phone element, so phone numbers come
// out of the detail blob.
func MapsProfile() Profile {
	return Profile{
		Name:     "google-maps",
		IDPrefix: "gm",
		SearchURL: func(location string) string {
			return mapsSearchBaseURL + url.PathEscape("agricultural vendors in "+location)
		},
		ReadySelectors: []string{
			`[role="article"]`,
			".section-result",
			".hfpxzc",
			".Nv2PK",
		},
		ListingSelector: `[role="article"], .section-result, .hfpxzc, .Nv2PK`,
		NameSelectors: []string{
			"h3",
			".section-result-title",
			".fontHeadlineSmall",
			".qBF1Pd",
			`[role="heading"]`,
		},
		DetailSelectors: []string{
			".section-result-details",
			".fontBodyMedium",
			".hfpxzc",
		},
		WebsiteSelector: `a[href^="http"], [data-item-id*="website"]`,
	}
}
