package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tharunlokeshu/agriscout/internal/discover"
)

// Runner executes one discovery request and renders its document.
// Satisfied by *discover.Discoverer.
type Runner interface {
	Document(ctx context.Context, req discover.Request) string
}

// DiscoveryJob runs discovery for one location.
type DiscoveryJob struct {
	Location     string
	RadiusMeters int
	MaxResults   int
	Runner       Runner
}

// Execute executes the discovery job
func (j *DiscoveryJob) Execute(ctx context.Context) Result {
	table := j.Runner.Document(ctx, discover.Request{
		Location:     j.Location,
		RadiusMeters: j.RadiusMeters,
		MaxResults:   j.MaxResults,
	})
	return &DiscoveryResult{
		Location: j.Location,
		Table:    table,
	}
}

// DiscoveryResult is the outcome for one location. Discovery itself
// never fails, so Error is reserved for infrastructure problems.
type DiscoveryResult struct {
	Location string
	Table    string
	Error    error
}

// GetError returns the error from the discovery result
func (r *DiscoveryResult) GetError() error {
	return r.Error
}

// BatchProcessor discovers vendors for many locations concurrently.
type BatchProcessor struct {
	runner       Runner
	concurrency  int
	radiusMeters int
	maxResults   int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency, radiusMeters, maxResults int) *BatchProcessor {
	return &BatchProcessor{
		runner:       runner,
		concurrency:  concurrency,
		radiusMeters: radiusMeters,
		maxResults:   maxResults,
	}
}

// ProcessLocations runs discovery for every location concurrently.
func (b *BatchProcessor) ProcessLocations(ctx context.Context, locations []string) []*DiscoveryResult {
	if len(locations) == 0 {
		return []*DiscoveryResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, loc := range locations {
		pool.Submit(&DiscoveryJob{
			Location:     loc,
			RadiusMeters: b.radiusMeters,
			MaxResults:   b.maxResults,
			Runner:       b.runner,
		})
	}

	results := pool.Wait()

	discoveryResults := make([]*DiscoveryResult, len(results))
	for i, result := range results {
		discoveryResults[i] = result.(*DiscoveryResult)
	}

	return discoveryResults
}

// ProcessFile reads locations from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*DiscoveryResult, error) {
	locations, err := ReadLocationsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}

	return b.ProcessLocations(ctx, locations), nil
}

// ReadLocationsFromFile reads locations from a file, one per line.
// Blank lines and #-comments are skipped; duplicates are dropped.
func ReadLocationsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var locations []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			locations = append(locations, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return locations, nil
}
