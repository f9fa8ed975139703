package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tharunlokeshu/agriscout/internal/cache"
	"github.com/tharunlokeshu/agriscout/internal/discover"
	"github.com/tharunlokeshu/agriscout/internal/model"
	"github.com/tharunlokeshu/agriscout/internal/source"
	"github.com/tharunlokeshu/agriscout/internal/store"
	"github.com/tharunlokeshu/agriscout/internal/util"
)

// loadConfig merges defaults, config file, and environment.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose
	cfg.Advisory.APIKey = os.Getenv("OPENAI_API_KEY")
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// buildDiscoverer assembles the full pipeline from configuration. The
// returned cleanup must be called before exit to reap the browser and
// close the history database.
func buildDiscoverer(cfg *model.Config, logger *zap.Logger, withBrowser bool) (*discover.Discoverer, *store.History, func(), error) {
	limiter := source.NewLimiter(cfg.Sources.RequestsPerSecond, cfg.Sources.Burst)

	structured := source.NewOverpass(
		cfg.Sources.OverpassURL,
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		limiter,
	)

	var scrapes []source.Source
	closers := []func(){}
	if withBrowser {
		browser := source.NewBrowser(source.BrowserOptions{
			Headless:    cfg.Browser.Headless,
			NavTimeout:  cfg.Browser.NavTimeout,
			WaitTimeout: cfg.Browser.WaitTimeout,
			UserAgent:   cfg.Browser.UserAgent,
		})
		closers = append(closers, browser.Close)

		var robots *util.RobotsGate
		if cfg.Sources.RespectRobots {
			robots = util.NewRobotsGate(util.NormalizeUserAgent(cfg.HTTP.UserAgent), cfg.HTTP.Timeout)
		}

		for _, profile := range []source.Profile{source.MapsProfile(), source.JustdialProfile()} {
			scrapes = append(scrapes,
				source.NewScrapeSource(profile, browser, robots, limiter, cfg.Browser.ListingCap, logger))
		}
	}

	var resultCache cache.Cache
	if cfg.Cache.Enabled {
		resultCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	var history *store.History
	if cfg.History.Enabled {
		h, err := store.OpenHistory(cfg.History.Path)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		history = h
		closers = append(closers, func() { _ = h.Close() })
	}

	d := discover.New(discover.Options{
		Structured: structured,
		Scrapes:    scrapes,
		Cache:      resultCache,
		CacheTTL:   cfg.Cache.TTL,
		Artifacts:  store.NewArtifactStore(cfg.Output.ArtifactDir),
		History:    history,
		Logger:     logger,
	})
	return d, history, cleanup, nil
}
