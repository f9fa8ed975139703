// Package source contains the vendor discovery sources: a structured
// geographic API adapter and headless-browser scrape adapters. Every
// source normalizes its output into model.VendorRecord; failures are
// classified so the orchestrator can fall through to the next source.
package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tharunlokeshu/agriscout/internal/model"
)

var (
	// ErrLocationFormat marks a location string that cannot be parsed
	// as a "lat,lon" coordinate pair. Recoverable: the orchestrator
	// falls back to the scrape sources.
	ErrLocationFormat = errors.New("location is not a lat,lon pair")

	// ErrSourceUnavailable marks a source that is unreachable,
	// rate-limited, or returning malformed data. Recoverable per
	// source; never fatal to the pipeline.
	ErrSourceUnavailable = errors.New("source unavailable")
)

// Query carries the caller-supplied discovery parameters.
type Query struct {
	Location     string
	RadiusMeters int
	MaxResults   int
}

// Source is a single vendor data source.
type Source interface {
	// Name identifies the source in logs and record IDs.
	Name() string

	// Discover returns vendor records for the query. Scrape sources
	// return an empty slice and nil error on total failure; only the
	// structured source reports ErrLocationFormat/ErrSourceUnavailable.
	Discover(ctx context.Context, q Query) ([]model.VendorRecord, error)
}

// ParseLatLon splits a location string into coordinates. The accepted
// form is exactly two comma-separated finite floats.
func ParseLatLon(location string) (lat, lon float64, err error) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("parse location %q: %w", location, ErrLocationFormat)
	}
	lat, err = parseCoordinate(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("parse location %q: %w", location, ErrLocationFormat)
	}
	lon, err = parseCoordinate(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("parse location %q: %w", location, ErrLocationFormat)
	}
	return lat, lon, nil
}

// parseCoordinate rejects the NaN and Inf forms ParseFloat accepts.
func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("coordinate is not finite")
	}
	return v, nil
}
