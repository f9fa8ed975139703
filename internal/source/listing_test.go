package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tharunlokeshu/agriscout/internal/model"
	"github.com/tharunlokeshu/agriscout/internal/util"
)

type fakeFetcher struct {
	html    string
	err     error
	gotURL  string
	gotSels []string
}

func (f *fakeFetcher) FetchRenderedHTML(ctx context.Context, pageURL string, readySelectors []string) (string, error) {
	f.gotURL = pageURL
	f.gotSels = readySelectors
	return f.html, f.err
}

const justdialPage = `<html><body>
<div class="resultbox">
  <a class="resultbox_title_anchor">Sri Venkateswara Agro Traders</a>
  <div class="resultbox_address">Main Road, Amalapuram 9876543210</div>
  <span class="callnow">098765 43210</span>
  <div class="resultbox_website"><a href="https://svagro.example">Website</a></div>
</div>
<div class="resultbox">
  <div class="resultbox_address">Canal Road, Razole</div>
</div>
<div class="resultbox"></div>
</body></html>`

func TestParseListings_Justdial(t *testing.T) {
	got, err := parseListings(justdialPage, JustdialProfile(), 10, "https://www.justdial.com/Amalapuram/Agricultural-Equipment-Dealers")
	if err != nil {
		t.Fatalf("parseListings failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	first := got[0]
	if first.ID != "jd_0" {
		t.Errorf("unexpected id %q", first.ID)
	}
	if first.Name != "Sri Venkateswara Agro Traders" {
		t.Errorf("unexpected name %q", first.Name)
	}
	// Dedicated phone element wins over the number in the address blob
	if first.Phone != "098765 43210" {
		t.Errorf("unexpected phone %q", first.Phone)
	}
	if first.Address != "Main Road, Amalapuram" {
		t.Errorf("unexpected address %q", first.Address)
	}
	if first.Website != "https://svagro.example" {
		t.Errorf("unexpected website %q", first.Website)
	}
	if first.Category != model.CategoryGeneric {
		t.Errorf("unexpected category %q", first.Category)
	}
	if first.HasCoordinates() {
		t.Errorf("scraped records must not carry coordinates")
	}

	second := got[1]
	if second.Name != model.NameUnknown {
		t.Errorf("expected placeholder name, got %q", second.Name)
	}
	if second.Address != "Canal Road, Razole" {
		t.Errorf("unexpected address %q", second.Address)
	}
	if second.Phone != "" {
		t.Errorf("expected empty phone, got %q", second.Phone)
	}

	third := got[2]
	if third.Name != model.NameUnknown || third.Address != model.AddressNA {
		t.Errorf("expected placeholders for bare listing, got %+v", third)
	}
}

const mapsPage = `<html><body>
<div role="article">
  <h3>Godavari Fertilizers Depot</h3>
  <div class="fontBodyMedium">099482 74748 · 12 Market Road, Kakinada</div>
  <a href="https://godavarifert.example">site</a>
</div>
<div role="article">
  <div class="qBF1Pd">Delta Seeds</div>
  <div class="fontBodyMedium">Bank Street, Kakinada</div>
</div>
</body></html>`

func TestParseListings_Maps(t *testing.T) {
	searchURL := MapsProfile().SearchURL("Kakinada")
	got, err := parseListings(mapsPage, MapsProfile(), 10, searchURL)
	if err != nil {
		t.Fatalf("parseListings failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	first := got[0]
	if first.ID != "gm_0" {
		t.Errorf("unexpected id %q", first.ID)
	}
	if first.Name != "Godavari Fertilizers Depot" {
		t.Errorf("unexpected name %q", first.Name)
	}
	// No dedicated phone element on Maps, so the blob extraction result
	// stands, quirks included.
	if first.Phone != "099482 7474" {
		t.Errorf("unexpected phone %q", first.Phone)
	}
	if first.Address != "8  12 Market Road, Kakinada" {
		t.Errorf("unexpected address %q", first.Address)
	}
	if first.SourceURL != searchURL {
		t.Errorf("unexpected source url %q", first.SourceURL)
	}

	second := got[1]
	if second.Name != "Delta Seeds" {
		t.Errorf("unexpected name %q", second.Name)
	}
	if second.Phone != "" {
		t.Errorf("expected empty phone, got %q", second.Phone)
	}
	if second.Address != "Bank Street, Kakinada" {
		t.Errorf("unexpected address %q", second.Address)
	}
}

func TestParseListings_CapEnforced(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<div class="resultbox"><a class="resultbox_title_anchor">Vendor %d</a></div>`, i)
	}
	b.WriteString("</body></html>")

	got, err := parseListings(b.String(), JustdialProfile(), 10, "https://www.justdial.com/X/Agricultural-Equipment-Dealers")
	if err != nil {
		t.Fatalf("parseListings failed: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected listing cap of 10, got %d", len(got))
	}
}

func TestScrapeSource_SearchURLEncoding(t *testing.T) {
	f := &fakeFetcher{html: ""}
	s := NewScrapeSource(MapsProfile(), f, nil, nil, 10, nil)

	_, err := s.Discover(context.Background(), Query{Location: "East Godavari"})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	want := "https://www.google.com/maps/search/agricultural%20vendors%20in%20East%20Godavari"
	if f.gotURL != want {
		t.Errorf("unexpected search URL %q", f.gotURL)
	}
	if len(f.gotSels) == 0 {
		t.Errorf("expected ready selectors to be passed through")
	}

	f2 := &fakeFetcher{html: ""}
	s2 := NewScrapeSource(JustdialProfile(), f2, nil, nil, 10, nil)
	if _, err := s2.Discover(context.Background(), Query{Location: "Rajahmundry"}); err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if f2.gotURL != "https://www.justdial.com/Rajahmundry/Agricultural-Equipment-Dealers" {
		t.Errorf("unexpected search URL %q", f2.gotURL)
	}
}

func TestScrapeSource_FetchErrorYieldsEmpty(t *testing.T) {
	f := &fakeFetcher{err: errors.New("browser crashed")}
	s := NewScrapeSource(JustdialProfile(), f, nil, nil, 10, nil)

	got, err := s.Discover(context.Background(), Query{Location: "Amalapuram"})
	if err != nil {
		t.Errorf("scrape sources must not propagate errors, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d records", len(got))
	}
}

func TestScrapeSource_EmptyPageYieldsEmpty(t *testing.T) {
	f := &fakeFetcher{html: ""}
	s := NewScrapeSource(JustdialProfile(), f, nil, nil, 10, nil)

	got, err := s.Discover(context.Background(), Query{Location: "Amalapuram"})
	if err != nil || len(got) != 0 {
		t.Errorf("expected empty result without error, got %d records, err %v", len(got), err)
	}
}

func TestScrapeSource_RobotsDisallowSkips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /\n"))
		}
	}))
	defer srv.Close()

	profile := JustdialProfile()
	profile.SearchURL = func(location string) string { return srv.URL + "/" + location }

	f := &fakeFetcher{html: justdialPage}
	gate := util.NewRobotsGate("agriscout", 2*time.Second)
	s := NewScrapeSource(profile, f, gate, nil, 10, nil)

	got, err := s.Discover(context.Background(), Query{Location: "Amalapuram"})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("robots disallow must yield zero results, got %d", len(got))
	}
	if f.gotURL != "" {
		t.Errorf("fetcher must not be invoked when robots disallow")
	}
}
