package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tharunlokeshu/agriscout/internal/discover"
)

var (
	radiusMeters int
	maxResults   int
	noCache      bool
	noScrape     bool
	asPDF        bool
	timeout      time.Duration
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover <location>",
	Short: "Find agricultural vendors around a location",
	Long: `Discover finds agricultural input vendors for a location.

The location may be a "lat,lon" pair, which is served by the
structured geographic API, or a free-form place name, which falls back
to scraping public listing sites.

Example:
  agriscout discover "16.5775,82.0010"
  agriscout discover Amalapuram --radius 5000
  agriscout discover Kakinada --pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().IntVar(&radiusMeters, "radius", 2000, "search radius in meters")
	discoverCmd.Flags().IntVar(&maxResults, "max-results", 200, "max vendors in the merged result")
	discoverCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force fresh discovery)")
	discoverCmd.Flags().BoolVar(&noScrape, "no-scrape", false, "structured source only, no browser fallback")
	discoverCmd.Flags().BoolVar(&asPDF, "pdf", false, "also write the PDF report")
	discoverCmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "overall discovery timeout")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	location := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	d, _, cleanup, err := buildDiscoverer(cfg, logger, !noScrape)
	if err != nil {
		return err
	}
	defer cleanup()

	req := discover.Request{
		Location:     location,
		RadiusMeters: radiusMeters,
		MaxResults:   maxResults,
	}

	fmt.Println(d.Document(ctx, req))

	if asPDF {
		if _, err := d.PDFReport(ctx, req); err != nil {
			return fmt.Errorf("pdf report: %w", err)
		}
	}
	return nil
}
