package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/tharunlokeshu/agriscout/internal/model"
)

func newTestOverpass(endpoint string) *Overpass {
	return NewOverpass(endpoint, 5*time.Second, "agriscout-test", 2_000_000, nil)
}

func TestOverpass_BadLocation(t *testing.T) {
	o := newTestOverpass("http://unused.invalid")
	for _, loc := range []string{"Amalapuram", "", "16.5,80.6,extra", "abc,def"} {
		_, err := o.Discover(context.Background(), Query{Location: loc})
		if !errors.Is(err, ErrLocationFormat) {
			t.Errorf("location %q: expected ErrLocationFormat, got %v", loc, err)
		}
	}
}

func TestOverpass_CompositeQueryBody(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	o := newTestOverpass(srv.URL)
	_, err := o.Discover(context.Background(), Query{Location: "16.5775,82.0010", RadiusMeters: 5000, MaxResults: 50})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected content type %q", gotContentType)
	}
	if !strings.HasPrefix(gotBody, "data=") {
		t.Fatalf("expected form-encoded data= body, got %q", gotBody)
	}
	query, err := url.QueryUnescape(strings.TrimPrefix(gotBody, "data="))
	if err != nil {
		t.Fatalf("body not url-encoded: %v", err)
	}

	for _, tag := range shopTags {
		want := `node["shop"="` + tag + `"](around:5000,16.5775,82.001);`
		if !strings.Contains(query, want) {
			t.Errorf("query missing clause for %s:\n%s", tag, query)
		}
	}
	if !strings.Contains(query, "[out:json]") {
		t.Errorf("query missing json output directive:\n%s", query)
	}
	if !strings.Contains(query, "out body 50;") {
		t.Errorf("query missing result cap:\n%s", query)
	}
}

func TestOverpass_MapsElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"elements": [
				{"id": 42, "lat": 16.58, "lon": 82.0,
				 "tags": {"shop": "fertilizer", "name": "Sri Rama Agro Agencies",
				          "addr:full": "Main Road, Amalapuram", "phone": "+91 98765 43210",
				          "website": "https://sriramaagro.example", "ref:gst": "37AAAAA0000A1Z5"}},
				{"id": 43, "lat": 16.60, "lon": 82.1,
				 "tags": {"shop": "seed", "addr:street": "Canal Road"}},
				{"id": 44, "lat": 16.61, "lon": 82.2, "tags": {"shop": "pesticide"}}
			]
		}`))
	}))
	defer srv.Close()

	o := newTestOverpass(srv.URL)
	got, err := o.Discover(context.Background(), Query{Location: "16.58,82.0", RadiusMeters: 5000, MaxResults: 50})
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}

	first := got[0]
	if first.ID != "42" || first.Name != "Sri Rama Agro Agencies" || first.Category != "fertilizer" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Address != "Main Road, Amalapuram" {
		t.Errorf("expected addr:full to win, got %q", first.Address)
	}
	if first.RegistrationID != "37AAAAA0000A1Z5" {
		t.Errorf("unexpected registration id %q", first.RegistrationID)
	}
	if first.SourceURL != "https://www.openstreetmap.org/node/42" {
		t.Errorf("unexpected source url %q", first.SourceURL)
	}
	if !first.HasCoordinates() {
		t.Errorf("expected coordinates on structured record")
	}

	second := got[1]
	if second.Name != model.NameUnknown {
		t.Errorf("expected unknown-name placeholder, got %q", second.Name)
	}
	if second.Address != "Canal Road" {
		t.Errorf("expected addr:street fallback, got %q", second.Address)
	}

	third := got[2]
	if third.Address != "" {
		t.Errorf("expected empty address when no addr tags, got %q", third.Address)
	}
}

func TestOverpass_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	o := newTestOverpass(srv.URL)
	_, err := o.Discover(context.Background(), Query{Location: "16.5,82.0"})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestOverpass_MalformedBodyIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	o := newTestOverpass(srv.URL)
	_, err := o.Discover(context.Background(), Query{Location: "16.5,82.0"})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestOverpass_UnreachableIsUnavailable(t *testing.T) {
	o := newTestOverpass("http://127.0.0.1:1")
	_, err := o.Discover(context.Background(), Query{Location: "16.5,82.0"})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestParseLatLon(t *testing.T) {
	lat, lon, err := ParseLatLon(" 16.5775 , 82.0010 ")
	if err != nil {
		t.Fatalf("ParseLatLon failed: %v", err)
	}
	if lat != 16.5775 || lon != 82.0010 {
		t.Errorf("unexpected coordinates %v,%v", lat, lon)
	}

	for _, bad := range []string{"Amalapuram", "1,2,3", "x,2", "1,y", "",
		"NaN,NaN", "NaN,82.0", "16.5,Inf", "-Inf,82.0", "+Inf,82.0"} {
		if _, _, err := ParseLatLon(bad); !errors.Is(err, ErrLocationFormat) {
			t.Errorf("input %q: expected ErrLocationFormat, got %v", bad, err)
		}
	}
}
