package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tharunlokeshu/agriscout/internal/model"
)

// shopTags is the whitelist of OpenStreetMap shop tags treated as
// agricultural input vendors.
var shopTags = []string{
	"fertilizer",
	"seed",
	"pesticide",
	"agricultural_machinery",
	"irrigation",
	"agri_input",
}

// Overpass queries the Overpass geographic point-of-interest API. It
// is the highest-priority source: coordinate-aware and machine-readable.
type Overpass struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *Limiter
}

// NewOverpass creates the structured API source.
func NewOverpass(endpoint string, timeout time.Duration, userAgent string, maxBytes int64, limiter *Limiter) *Overpass {
	return &Overpass{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		maxBytes:   maxBytes,
		limiter:    limiter,
	}
}

// Name implements Source.
func (o *Overpass) Name() string { return "overpass" }

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Discover issues one composite query covering all whitelisted shop
// tags. A single request bounds both latency and rate-limit exposure
// compared to one call per tag.
func (o *Overpass) Discover(ctx context.Context, q Query) ([]model.VendorRecord, error) {
	lat, lon, err := ParseLatLon(q.Location)
	if err != nil {
		return nil, err
	}

	if o.limiter != nil {
		if err := o.limiter.Wait(ctx, o.endpoint); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	query := buildOverpassQuery(lat, lon, q.RadiusMeters, q.MaxResults)
	body := "data=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", o.userAgent)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass fetch: %w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("overpass status %d: %w", resp.StatusCode, ErrSourceUnavailable)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, o.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("overpass read: %w: %v", ErrSourceUnavailable, err)
	}

	var parsed overpassResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("overpass decode: %w: %v", ErrSourceUnavailable, err)
	}

	records := make([]model.VendorRecord, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		records = append(records, mapElement(el))
	}
	return records, nil
}

func buildOverpassQuery(lat, lon float64, radiusMeters, maxResults int) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:25];\n(\n")
	for _, tag := range shopTags {
		fmt.Fprintf(&b, "  node[\"shop\"=\"%s\"](around:%d,%s,%s);\n",
			tag, radiusMeters,
			strconv.FormatFloat(lat, 'f', -1, 64),
			strconv.FormatFloat(lon, 'f', -1, 64))
	}
	fmt.Fprintf(&b, ");\nout body %d;\n", maxResults)
	return b.String()
}

func mapElement(el overpassElement) model.VendorRecord {
	lat, lon := el.Lat, el.Lon

	name := el.Tags["name"]
	if name == "" {
		name = model.NameUnknown
	}

	address := el.Tags["addr:full"]
	if address == "" {
		address = el.Tags["addr:street"]
	}

	return model.VendorRecord{
		ID:             strconv.FormatInt(el.ID, 10),
		Name:           name,
		Category:       el.Tags["shop"],
		Latitude:       &lat,
		Longitude:      &lon,
		Address:        address,
		Phone:          el.Tags["phone"],
		Website:        el.Tags["website"],
		RegistrationID: el.Tags["ref:gst"],
		SourceURL:      fmt.Sprintf("https://www.openstreetmap.org/node/%d", el.ID),
	}
}
