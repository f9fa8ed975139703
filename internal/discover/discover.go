// Package discover orchestrates the vendor discovery pipeline: try
// the structured source first, fall back to the scrape sources, merge,
// render, and persist. External data problems degrade the result but
// never fail it.
package discover

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/tharunlokeshu/agriscout/internal/aggregate"
	"github.com/tharunlokeshu/agriscout/internal/cache"
	"github.com/tharunlokeshu/agriscout/internal/model"
	"github.com/tharunlokeshu/agriscout/internal/render"
	"github.com/tharunlokeshu/agriscout/internal/source"
	"github.com/tharunlokeshu/agriscout/internal/store"
)

// Request carries one discovery invocation's parameters.
type Request struct {
	Location     string
	RadiusMeters int
	MaxResults   int
}

func (r Request) withDefaults() Request {
	if r.RadiusMeters <= 0 {
		r.RadiusMeters = 2000
	}
	if r.MaxResults <= 0 {
		r.MaxResults = aggregate.DefaultMaxResults
	}
	return r
}

// Discoverer runs the discovery pipeline. The structured source is
// preferred; the scrape sources are consulted, in order, only when it
// cannot serve the query or finds nothing.
type Discoverer struct {
	structured source.Source
	scrapes    []source.Source
	cache      cache.Cache
	cacheTTL   time.Duration
	artifacts  *store.ArtifactStore
	history    *store.History
	logger     *zap.Logger
}

// Options configures a Discoverer. Structured, Cache, Artifacts, and
// History may each be nil to disable that stage.
type Options struct {
	Structured source.Source
	Scrapes    []source.Source
	Cache      cache.Cache
	CacheTTL   time.Duration
	Artifacts  *store.ArtifactStore
	History    *store.History
	Logger     *zap.Logger
}

// New creates a Discoverer.
func New(opts Options) *Discoverer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cacheTTL := opts.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 15 * time.Minute
	}
	return &Discoverer{
		structured: opts.Structured,
		scrapes:    opts.Scrapes,
		cache:      opts.Cache,
		cacheTTL:   cacheTTL,
		artifacts:  opts.Artifacts,
		history:    opts.History,
		logger:     logger,
	}
}

// Discover returns the merged, deduplicated, capped vendor list for a
// location. It never returns an error: every source failure narrows
// the result, possibly to empty.
func (d *Discoverer) Discover(ctx context.Context, req Request) []model.VendorRecord {
	req = req.withDefaults()

	key := cache.DiscoveryKey(req.Location, req.RadiusMeters, req.MaxResults)
	if d.cache != nil {
		if data, ok := d.cache.Get(key); ok {
			var cached []model.VendorRecord
			if err := json.Unmarshal(data, &cached); err == nil {
				d.logger.Debug("cache hit", zap.String("location", req.Location))
				return cached
			}
			_ = d.cache.Delete(key)
		}
	}

	merged := aggregate.Merge(d.collect(ctx, req), req.MaxResults)

	if d.cache != nil {
		if data, err := json.Marshal(merged); err == nil {
			_ = d.cache.Set(key, data, d.cacheTTL)
		}
	}

	// Cache hits return above, so only fresh runs are recorded.
	if d.history != nil {
		if _, err := d.history.RecordDiscovery(ctx, store.Discovery{
			Location:     req.Location,
			RadiusMeters: req.RadiusMeters,
			MaxResults:   req.MaxResults,
			VendorCount:  len(merged),
		}); err != nil {
			d.logger.Warn("record discovery failed", zap.Error(err))
		}
	}
	return merged
}

// collect gathers the per-source result lists in priority order.
func (d *Discoverer) collect(ctx context.Context, req Request) [][]model.VendorRecord {
	q := source.Query{Location: req.Location, RadiusMeters: req.RadiusMeters, MaxResults: req.MaxResults}

	if d.structured != nil {
		records, err := d.structured.Discover(ctx, q)
		if err == nil && len(records) > 0 {
			d.logger.Info("structured source served the query",
				zap.String("source", d.structured.Name()),
				zap.Int("records", len(records)))
			return [][]model.VendorRecord{records}
		}
		if err != nil {
			d.logger.Warn("structured source unavailable, falling back to scraping",
				zap.String("source", d.structured.Name()), zap.Error(err))
		} else {
			d.logger.Info("structured source found nothing, falling back to scraping",
				zap.String("source", d.structured.Name()))
		}
	}

	var lists [][]model.VendorRecord
	for _, s := range d.scrapes {
		records, err := s.Discover(ctx, q)
		if err != nil {
			d.logger.Warn("scrape source failed",
				zap.String("source", s.Name()), zap.Error(err))
			continue
		}
		d.logger.Info("scrape source finished",
			zap.String("source", s.Name()), zap.Int("records", len(records)))
		lists = append(lists, records)
	}
	return lists
}

// Document runs discovery and renders the text table. When an
// artifact store is configured the table is also written to disk;
// persistence failures are logged, not returned.
func (d *Discoverer) Document(ctx context.Context, req Request) string {
	vendors := d.Discover(ctx, req)
	table := render.Table(req.Location, vendors)

	if d.artifacts != nil {
		if path, err := d.artifacts.SaveTable(req.Location, table); err != nil {
			d.logger.Warn("persist table failed", zap.Error(err))
		} else {
			d.logger.Info("table saved", zap.String("path", path))
		}
	}
	return table
}

// PDFReport runs discovery and renders the contactable-vendors PDF.
func (d *Discoverer) PDFReport(ctx context.Context, req Request) ([]byte, error) {
	vendors := d.Discover(ctx, req)
	pdf, err := render.PDF(req.Location, vendors, time.Now())
	if err != nil {
		return nil, err
	}

	if d.artifacts != nil {
		if path, err := d.artifacts.SavePDF(req.Location, pdf); err != nil {
			d.logger.Warn("persist pdf failed", zap.Error(err))
		} else {
			d.logger.Info("pdf saved", zap.String("path", path))
		}
	}
	return pdf, nil
}
