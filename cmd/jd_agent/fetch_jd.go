package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jd-extractor/internal/config"
	"github.com/jonathan/jd-extractor/internal/db"
	"github.com/jonathan/jd-extractor/internal/fetch"
	"github.com/jonathan/jd-extractor/internal/observability"
	"github.com/jonathan/jd-extractor/internal/pipeline"
)

const defaultBatchConcurrency = 4

var fetchJDCmd = &cobra.Command{
	Use:   "fetch-jd",
	Short: "Fetch and extract a job posting from a URL",
	Long:  "Fetch a job posting URL, resolve its readable content through the extraction cascade, and print or write the cleaned text with metadata.",
	RunE:  runFetchJD,
}

var (
	fetchURL         string
	fetchURLsFile    string
	fetchMode        string
	fetchOut         string
	fetchConfigPath  string
	fetchTimeout     int
	fetchConcurrency int
	fetchDatabaseURL string
	fetchSkipCache   bool
	fetchVerbose     bool
)

func init() {
	fetchJDCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "Job posting URL to extract")
	fetchJDCmd.Flags().StringVar(&fetchURLsFile, "urls-file", "", "Path to file with one URL per line (batch mode)")
	fetchJDCmd.Flags().StringVarP(&fetchMode, "mode", "m", "", "Fetch mode: auto, static, or rendered (default auto)")
	fetchJDCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "Output directory for extraction artifacts")
	fetchJDCmd.Flags().StringVarP(&fetchConfigPath, "config", "c", "", "Path to JSON config file")
	fetchJDCmd.Flags().IntVar(&fetchTimeout, "timeout", 0, "Static fetch timeout in seconds")
	fetchJDCmd.Flags().IntVar(&fetchConcurrency, "concurrency", 0, "Batch mode worker count")
	fetchJDCmd.Flags().StringVar(&fetchDatabaseURL, "database-url", "", "PostgreSQL URL for the page cache (defaults to DATABASE_URL)")
	fetchJDCmd.Flags().BoolVar(&fetchSkipCache, "skip-cache", false, "Bypass the page cache and always fetch from the network")
	fetchJDCmd.Flags().BoolVarP(&fetchVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(fetchJDCmd)
}

// resolveFetchConfig folds the optional config file under the CLI flags.
// Flags always win; the config file only fills in what the flags left blank.
func resolveFetchConfig() (*config.Config, error) {
	cfg := &config.Config{
		JobURL:              fetchURL,
		Mode:                fetchMode,
		Out:                 fetchOut,
		DatabaseURL:         fetchDatabaseURL,
		FetchTimeoutSeconds: fetchTimeout,
		Concurrency:         fetchConcurrency,
		SkipCache:           fetchSkipCache,
		Verbose:             fetchVerbose,
	}

	if fetchConfigPath != "" {
		fileCfg, err := config.LoadConfig(fetchConfigPath)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultBatchConcurrency
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newOrchestrator builds the pipeline from resolved configuration, wiring the
// page cache when a database URL is available.
func newOrchestrator(ctx context.Context, cfg *config.Config) (*pipeline.Orchestrator, *db.DB, error) {
	fetchOpts := fetch.DefaultOptions()
	if cfg.FetchTimeoutSeconds > 0 {
		fetchOpts.Timeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second
	}

	pipelineCfg := &pipeline.Config{
		FetchOptions: fetchOpts,
		Verbose:      cfg.Verbose,
	}

	var database *db.DB
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		cached := fetch.NewCachedFetcher(database, &fetch.CachedFetcherConfig{
			CacheTTL:  time.Duration(cfg.CacheTTLHours) * time.Hour,
			SkipCache: cfg.SkipCache,
			Options:   fetchOpts,
			Verbose:   cfg.Verbose,
		})
		pipelineCfg.StaticFetch = cached.Static
	}

	return pipeline.New(pipelineCfg), database, nil
}

func runFetchJD(cmd *cobra.Command, args []string) error {
	cfg, err := resolveFetchConfig()
	if err != nil {
		return err
	}

	if cfg.JobURL == "" && fetchURLsFile == "" {
		return fmt.Errorf("either --url or --urls-file must be provided")
	}
	if cfg.JobURL != "" && fetchURLsFile != "" {
		return fmt.Errorf("--url and --urls-file are mutually exclusive; provide only one")
	}

	ctx := context.Background()
	orchestrator, database, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	if fetchURLsFile != "" {
		return runFetchBatch(ctx, orchestrator, cfg)
	}
	return runFetchSingle(ctx, orchestrator, cfg, cfg.JobURL, cfg.Out)
}

func runFetchSingle(ctx context.Context, orchestrator *pipeline.Orchestrator, cfg *config.Config, urlStr, outDir string) error {
	result, err := orchestrator.Extract(ctx, urlStr, cfg.Mode)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintExtractionResult(result)

	if outDir != "" {
		if err := pipeline.WriteOutput(outDir, result); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Cleaned text: %s\n", filepath.Join(outDir, "job_posting.cleaned.txt"))
		fmt.Fprintf(os.Stdout, "Metadata: %s\n", filepath.Join(outDir, "job_posting.meta.json"))
	}

	if result.Source == pipeline.SourceNone {
		return fmt.Errorf("extraction failed: %s", result.Error)
	}
	return nil
}

// runFetchBatch extracts every URL in the batch file concurrently. Individual
// failures are reported but do not abort the remaining URLs.
func runFetchBatch(ctx context.Context, orchestrator *pipeline.Orchestrator, cfg *config.Config) error {
	urls, err := readURLsFile(fetchURLsFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", fetchURLsFile)
	}

	results := make([]*pipeline.Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, urlStr := range urls {
		g.Go(func() error {
			result, err := orchestrator.Extract(gctx, urlStr, cfg.Mode)
			if err != nil {
				// Caller-contract errors (blank line slipped through, bad
				// mode) fail the URL, not the batch.
				result = &pipeline.Result{URL: urlStr, Source: pipeline.SourceNone, Error: err.Error()}
			}
			results[i] = result

			if cfg.Out != "" {
				subDir := filepath.Join(cfg.Out, fmt.Sprintf("job_%03d", i+1))
				if err := pipeline.WriteOutput(subDir, result); err != nil {
					log.Printf("Failed to write output for %s: %v", urlStr, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	succeeded := 0
	for _, result := range results {
		if result.Source != pipeline.SourceNone {
			succeeded++
		} else {
			fmt.Fprintf(os.Stderr, "FAILED %s: %s\n", result.URL, result.Error)
		}
	}
	fmt.Fprintf(os.Stdout, "Extracted %d/%d URLs\n", succeeded, len(urls))

	if succeeded == 0 {
		return fmt.Errorf("all %d extractions failed", len(urls))
	}
	return nil
}

// readURLsFile reads one URL per line, skipping blanks and # comments.
func readURLsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URLs file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URLs file: %w", err)
	}
	return urls, nil
}
