package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/tharunlokeshu/agriscout/internal/extract"
	"github.com/tharunlokeshu/agriscout/internal/model"
	"github.com/tharunlokeshu/agriscout/internal/util"
)

// Profile describes how to scrape one listing site: where to search
// and which selectors to try, in priority order, for each field.
type Profile struct {
	Name            string
	IDPrefix        string
	SearchURL       func(location string) string
	ReadySelectors  []string
	ListingSelector string
	NameSelectors   []string
	DetailSelectors []string
	PhoneSelectors  []string
	WebsiteSelector string
}

// Fetcher renders a page and returns its HTML. Satisfied by *Browser;
// tests substitute a canned implementation.
type Fetcher interface {
	FetchRenderedHTML(ctx context.Context, pageURL string, readySelectors []string) (string, error)
}

// ScrapeSource discovers vendors by rendering a listing site and
// parsing its DOM. All failures degrade to zero results; a scrape
// source never propagates an error to the orchestrator.
type ScrapeSource struct {
	profile    Profile
	fetcher    Fetcher
	robots     *util.RobotsGate
	limiter    *Limiter
	listingCap int
	logger     *zap.Logger
}

// NewScrapeSource builds a scrape adapter for the given site profile.
// robots and limiter may be nil to disable those gates.
func NewScrapeSource(profile Profile, fetcher Fetcher, robots *util.RobotsGate, limiter *Limiter, listingCap int, logger *zap.Logger) *ScrapeSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	if listingCap <= 0 {
		listingCap = 10
	}
	return &ScrapeSource{
		profile:    profile,
		fetcher:    fetcher,
		robots:     robots,
		limiter:    limiter,
		listingCap: listingCap,
		logger:     logger,
	}
}

// Name implements Source.
func (s *ScrapeSource) Name() string { return s.profile.Name }

// Discover implements Source. The error return is always nil: scrape
// sources are best-effort by contract, and every failure mode maps to
// an empty result.
func (s *ScrapeSource) Discover(ctx context.Context, q Query) ([]model.VendorRecord, error) {
	searchURL := s.profile.SearchURL(q.Location)

	if s.robots != nil {
		allowed, err := s.robots.Allowed(ctx, searchURL)
		if err != nil {
			s.logger.Warn("robots check failed, skipping source",
				zap.String("source", s.profile.Name), zap.Error(err))
			return nil, nil
		}
		if !allowed {
			s.logger.Warn("robots disallow, skipping source",
				zap.String("source", s.profile.Name), zap.String("url", searchURL))
			return nil, nil
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, searchURL); err != nil {
			return nil, nil
		}
	}

	html, err := s.fetcher.FetchRenderedHTML(ctx, searchURL, s.profile.ReadySelectors)
	if err != nil {
		s.logger.Warn("page fetch failed",
			zap.String("source", s.profile.Name), zap.Error(err))
		return nil, nil
	}
	if html == "" {
		return nil, nil
	}

	records, err := parseListings(html, s.profile, s.listingCap, searchURL)
	if err != nil {
		s.logger.Warn("listing parse failed",
			zap.String("source", s.profile.Name), zap.Error(err))
		return nil, nil
	}
	return records, nil
}

// parseListings extracts vendor records from a rendered document. Pure
// with respect to the network so it can be tested on HTML fragments.
func parseListings(html string, p Profile, limit int, searchURL string) ([]model.VendorRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	var records []model.VendorRecord
	doc.Find(p.ListingSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(records) >= limit {
			return false
		}

		name := firstText(sel, p.NameSelectors)
		if name == "" {
			name = model.NameUnknown
		}

		blob := firstText(sel, p.DetailSelectors)
		fields := extract.ExtractFields(blob)

		// A dedicated phone element beats whatever the regex pulled
		// out of the detail blob.
		if direct := firstText(sel, p.PhoneSelectors); direct != "" {
			fields.Phone = direct
		}

		website := ""
		if p.WebsiteSelector != "" {
			website, _ = sel.Find(p.WebsiteSelector).First().Attr("href")
		}

		records = append(records, model.VendorRecord{
			ID:        fmt.Sprintf("%s_%d", p.IDPrefix, i),
			Name:      name,
			Category:  model.CategoryGeneric,
			Address:   fields.Address,
			Phone:     fields.Phone,
			Website:   website,
			SourceURL: searchURL,
		})
		return true
	})
	return records, nil
}

// firstText returns the trimmed text of the first selector that
// matches a non-empty element.
func firstText(sel *goquery.Selection, selectors []string) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(sel.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
