package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"crawlkit/internal/config"
	"crawlkit/internal/engine"
	clog "crawlkit/internal/log"
	"crawlkit/internal/model"
	"crawlkit/internal/processor"
	"crawlkit/internal/processors/cryptoaddr"
	"crawlkit/internal/processors/emailaddr"
	"crawlkit/internal/processors/exifmeta"
	"crawlkit/internal/processors/socialhandle"
	"crawlkit/internal/processors/webfetch"
	"crawlkit/internal/report"
	"crawlkit/internal/store/filestore"
	"crawlkit/internal/store/memory"
	"crawlkit/internal/store/sqlstore"
	"crawlkit/internal/transport"
)

// NewSubmitCmd creates the submit command.
func NewSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <seed> [extra-seeds...]",
		Short: "Submit one or more seeds to a crawling session and wait for it to finish",
		Long: `Submit runs a single crawling session over the given seeds using the
built-in example processors (webfetch, emailaddr, cryptoaddr,
socialhandle, exifmeta), waits for it to complete, then writes a report.

Examples:
  # Crawl a single URL, print a plain-text summary
  crawlkit submit https://example.com

  # Crawl multiple seeds, write a JSON report to a file
  crawlkit submit --json -o result.json https://example.com https://other.example

  # Use a SOCKS5 proxy and a custom config file
  crawlkit submit --proxy 127.0.0.1:9050 -c myconfig.yaml https://example.onion`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSubmitCmd,
	}

	cmd.Flags().IntP("parallelism", "P", config.DefaultSessionParallelism,
		"Maximum number of concurrently running sessions")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of frontier items processed per round")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxCrawlDepth,
		"Maximum crawl recursion depth")
	cmd.Flags().DurationP("throttle", "T", config.DefaultThrottleDelay,
		"Fallback minimum delay between successive invocations of the same processor")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout for processors that perform outbound I/O")
	cmd.Flags().StringP("config", "c", "",
		"Per-processor configuration file path (default: .crawlkit.yaml in current or home directory)")
	cmd.Flags().String("store", string(config.StoreMemory),
		"Result store backend: memory, file, or sqlite")
	cmd.Flags().String("store-path", "",
		"Directory (sqlite) or file directory (file) for the result store (default: XDG data directory)")
	cmd.Flags().String("algorithm", "bfs",
		"Frontier traversal order: bfs or dfs")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address (host:port) for transport-backed processors")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header sent by HTTP-based processors")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size read by HTTP-based processors")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// submitOptions is the parsed, validated set of flags and positional
// arguments a submit invocation runs from.
type submitOptions struct {
	cfg       *config.Config
	algorithm engine.Algorithm
	proxy     string
}

func runSubmitCmd(cmd *cobra.Command, args []string) error {
	opts, err := buildSubmitOptions(cmd, args)
	if err != nil {
		return err
	}
	if err := opts.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := clog.NewSecureLogger(os.Stderr, opts.cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling")
		cancel()
	}()

	return runSubmit(ctx, opts, logger)
}

// buildSubmitOptions builds a submitOptions from cobra flags and the
// positional seed arguments.
func buildSubmitOptions(cmd *cobra.Command, args []string) (*submitOptions, error) {
	cfg := config.NewConfig()
	var err error

	cfg.SessionParallelism, err = cmd.Flags().GetInt("parallelism")
	if err != nil {
		return nil, err
	}
	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}
	cfg.MaxCrawlDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}
	cfg.ThrottleDelay, err = cmd.Flags().GetDuration("throttle")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.ProcessorConfigs, err = config.LoadProcessorFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.ProcessorConfigs = &config.ProcessorFile{Processors: make(map[string]config.ProcessorConfig)}
	}

	storeKind, err := cmd.Flags().GetString("store")
	if err != nil {
		return nil, err
	}
	cfg.Store = config.StoreKind(storeKind)

	cfg.StorePath, err = cmd.Flags().GetString("store-path")
	if err != nil {
		return nil, err
	}

	algoFlag, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		return nil, err
	}
	algorithm := engine.BFS
	if algoFlag == "dfs" {
		algorithm = engine.DFS
	}

	proxy, err := cmd.Flags().GetString("proxy")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}
	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.Seeds = args

	return &submitOptions{cfg: cfg, algorithm: algorithm, proxy: proxy}, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runSubmit wires the dispatcher from opts, submits the seeds, blocks
// until the resulting session terminates, then writes the report.
func runSubmit(ctx context.Context, opts *submitOptions, logger *slog.Logger) error {
	cfg := opts.cfg

	resultStore, err := openStore(cfg)
	if err != nil {
		return err
	}

	transportClient, err := buildTransportClient(opts)
	if err != nil {
		return err
	}
	if transportClient.ProxyAddress() != "" {
		if status := transportClient.CheckConnection(ctx); status != transport.ProxyStatusOK {
			return fmt.Errorf("proxy %s unreachable: %s", transportClient.ProxyAddress(), status)
		}
	}

	processors := buildProcessors(transportClient, cfg)
	throttler := buildThrottler(cfg)

	done := make(chan engine.ClientEvent, 1)
	dispatcher, err := engine.NewDispatcher(engine.DispatcherConfig{
		Processors:               processors,
		Store:                    resultStore,
		SessionParallelism:       cfg.SessionParallelism,
		InputProcessingBatchSize: cfg.BatchSize,
		MaxCrawlDepth:            cfg.MaxCrawlDepth,
		Throttler:                throttler,
		Algorithm:                opts.algorithm,
		Logger:                   logger,
		Listener: func(ev engine.ClientEvent) {
			done <- ev
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	defer dispatcher.Shutdown()

	logger.Info("submitting seeds", "seeds", cfg.Seeds, "store", cfg.Store, "algorithm", opts.algorithm)

	seed, extraSeeds := cfg.Seeds[0], cfg.Seeds[1:]
	if err := dispatcher.Submit(ctx, seed, extraSeeds...); err != nil {
		return fmt.Errorf("failed to submit seeds: %w", err)
	}

	select {
	case ev := <-done:
		if ev.Kind == engine.ClientCrawlingFailed {
			return fmt.Errorf("session failed: %w", ev.Err)
		}
		logger.Info("session finished", "resultId", ev.CrawlingResultID, "durationMs", ev.CrawlingDurationMs)
		result, err := resultStore.GetByID(ctx, ev.CrawlingResultID)
		if err != nil {
			return fmt.Errorf("failed to load result: %w", err)
		}
		return outputReport(cfg, result)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// openStore constructs the processor.ResultStore selected by cfg.Store.
func openStore(cfg *config.Config) (processor.ResultStore, error) {
	switch cfg.Store {
	case config.StoreFile:
		dir := cfg.StorePath
		if dir == "" {
			dir = config.XDGDataDir()
		}
		return filestore.New(dir)
	case config.StoreSQLite:
		dir := cfg.StorePath
		if dir == "" {
			dir = config.XDGDataDir()
		}
		return sqlstore.Open(dir, sqlstore.DefaultOptions())
	case config.StoreMemory, "":
		return memory.New(), nil
	default:
		return nil, config.ErrUnknownStoreKind
	}
}

// buildTransportClient builds the shared transport.Client HTTP-based
// processors derive their *http.Client from, optionally dialing through a
// SOCKS5 proxy.
func buildTransportClient(opts *submitOptions) (*transport.Client, error) {
	transportClient, err := transport.NewClient(opts.proxy, opts.cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport client: %w", err)
	}
	return transportClient, nil
}

// buildProcessors returns the example processor set crawlkit ships by
// default, with each transport-backed processor's ignore/follow routing
// and per-identity cookie/headers drawn from cfg.ProcessorConfigs.
func buildProcessors(transportClient *transport.Client, cfg *config.Config) []processor.InputProcessor {
	webfetchCfg := processorConfigFor(cfg, webfetch.Source.ID)
	exifmetaCfg := processorConfigFor(cfg, exifmeta.Source.ID)

	return []processor.InputProcessor{
		webfetch.New(identityHTTPClient(transportClient, webfetchCfg),
			webfetch.WithUserAgent(cfg.UserAgent),
			webfetch.WithMaxBodySize(cfg.MaxBodySize),
			webfetch.WithIgnorePatterns(webfetchCfg.IgnorePatterns),
			webfetch.WithFollowPatterns(webfetchCfg.FollowPatterns),
		),
		emailaddr.New(),
		cryptoaddr.New(),
		socialhandle.New(),
		exifmeta.New(identityHTTPClient(transportClient, exifmetaCfg), exifmeta.WithMaxImageSize(cfg.MaxBodySize)),
	}
}

// processorConfigFor returns the merged per-identity configuration for
// processorID, or the zero value when no processor config file was loaded.
func processorConfigFor(cfg *config.Config, processorID string) config.ProcessorConfig {
	if cfg.ProcessorConfigs == nil {
		return config.ProcessorConfig{}
	}
	return cfg.ProcessorConfigs.GetProcessorConfig(processorID)
}

// identityHTTPClient builds the *http.Client a transport-backed processor
// should use: the shared client, or one that injects pc's cookie/headers
// into every request when either is configured.
func identityHTTPClient(transportClient *transport.Client, pc config.ProcessorConfig) *http.Client {
	if pc.Cookie == "" && len(pc.Headers) == 0 {
		return transportClient.NewHTTPClient()
	}
	return transportClient.HTTPClientWithConfig(pc.Cookie, pc.Headers)
}

// buildThrottler builds a per-processor throttler from cfg's processor
// config file. Identities with no explicit override fall back to the
// file's defaults.throttleDelay when it is set, and to cfg.ThrottleDelay
// otherwise.
func buildThrottler(cfg *config.Config) engine.Throttler {
	fallback := engine.NewFixedDelayThrottler(cfg.ThrottleDelay)
	if cfg.ProcessorConfigs == nil {
		return fallback
	}
	if cfg.ProcessorConfigs.Defaults.ThrottleDelay > 0 {
		fallback = engine.NewFixedDelayThrottler(cfg.ProcessorConfigs.Defaults.ThrottleDelay)
	}
	delays := cfg.ProcessorConfigs.ThrottleDelays()
	if len(delays) == 0 {
		return fallback
	}
	return engine.NewPerProcessorThrottler(delays, fallback)
}

// outputReport writes result to cfg's configured destination in cfg's
// configured format.
func outputReport(cfg *config.Config, result model.CrawlingResult) error {
	output := os.Stdout
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	switch {
	case cfg.JSONReport:
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case cfg.MarkdownReport:
		_, err := report.NewMarkdownWriter(output).Write(result)
		return err
	default:
		_, err := report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose)).Write(result)
		return err
	}
}
