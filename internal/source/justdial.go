package source

import "net/url"

const justdialBaseURL = "https://www.justdial.com/"

// JustdialProfile targets the Justdial category listing for
// agricultural equipment dealers in a named town. Unlike Maps the
// markup carries dedicated phone elements, so those take precedence
// over numbers pulled from the address text.
func JustdialProfile() Profile {
	return Profile{
		Name:     "justdial",
		IDPrefix: "jd",
		SearchURL: func(location string) string {
			return justdialBaseURL + url.PathEscape(location) + "/Agricultural-Equipment-Dealers"
		},
		ReadySelectors: []string{
			".resultbox",
		},
		ListingSelector: ".resultbox",
		NameSelectors: []string{
			".resultbox_title_anchor",
			".store-name",
			".business-name",
		},
		DetailSelectors: []string{
			".resultbox_address",
			".address",
			".location",
		},
		PhoneSelectors: []string{
			".callnow",
			".phone",
			".contact-number",
			"[data-phone]",
		},
		WebsiteSelector: `.resultbox_website a, .website-link, [href^="http"]`,
	}
}
