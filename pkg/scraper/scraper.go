package scraper

import (
	"bytes"
	"context"
	"os"
	"time"

	"telegraphdl/pkg/config"
	"telegraphdl/pkg/logger"
	"telegraphdl/pkg/ratelimit"
	"telegraphdl/pkg/storage"
	"telegraphdl/pkg/telegraph"
	"telegraphdl/pkg/ui"
)

// Summary describes one completed run
type Summary struct {
	ArticlePath string
	Downloaded  []string
	Skipped     []string
	Bytes       int64
	Duration    time.Duration
}

// Scraper downloads the images of one article at a time
type Scraper struct {
	client   ArticleClient
	pacer    ratelimit.Limiter
	reporter ui.Reporter
	logger   logger.Logger
	fileMode os.FileMode
}

// Option configures a Scraper
type Option func(*Scraper)

// WithPacer replaces the pause taken after every download
func WithPacer(l ratelimit.Limiter) Option {
	return func(s *Scraper) { s.pacer = l }
}

// WithReporter sets where per-image notices go
func WithReporter(r ui.Reporter) Option {
	return func(s *Scraper) { s.reporter = r }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(s *Scraper) { s.logger = l }
}

// WithFileMode sets the permissions of written images
func WithFileMode(mode os.FileMode) Option {
	return func(s *Scraper) { s.fileMode = mode }
}

// New creates a Scraper around client. Defaults are a one second pause,
// console notices on stdout and the global logger.
func New(client ArticleClient, opts ...Option) *Scraper {
	s := &Scraper{
		client:   client,
		pacer:    ratelimit.NewFixedDelay(time.Second),
		reporter: ui.NewConsoleReporter(os.Stdout),
		logger:   logger.GetLogger(),
		fileMode: 0644,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromConfig wires a telegraph client, pacer and file mode from cfg
func NewFromConfig(cfg *config.Config, opts ...Option) (*Scraper, error) {
	log := logger.GetLogger()

	client, err := telegraph.NewClientFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	mode, err := cfg.FileMode()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithPacer(ratelimit.NewFixedDelay(cfg.Download.Delay)),
		WithFileMode(mode),
		WithLogger(log),
	}
	return New(client, append(base, opts...)...), nil
}

// Download saves every image of the article at articleURL into outputDir.
// Images run strictly in page order. Existing files are skipped and the
// pacer is consulted after each image actually written. The first failure
// aborts the run and is returned unchanged.
func (s *Scraper) Download(ctx context.Context, outputDir, externalID, articleURL string) (*Summary, error) {
	start := time.Now()
	log := s.logger.WithFields(map[string]interface{}{
		"external_id": externalID,
		"url":         articleURL,
	})

	pathSegment, err := s.client.ArticlePath(articleURL)
	if err != nil {
		log.WithError(err).Debug("Failed to derive article path")
		return nil, err
	}

	store, err := storage.NewManager(outputDir, s.fileMode)
	if err != nil {
		log.WithError(err).Debug("Failed to open output directory")
		return nil, err
	}

	images, err := s.client.ArticleImages(ctx, articleURL)
	if err != nil {
		log.WithError(err).Debug("Failed to fetch article")
		return nil, err
	}

	log.InfoWithFields("Starting article download", map[string]interface{}{
		"article_path": pathSegment,
		"images":       len(images),
		"output_dir":   outputDir,
	})

	summary := &Summary{ArticlePath: pathSegment}

	for _, img := range images {
		name := storage.BuildFilename(externalID, pathSegment, img.Name)
		path := store.Path(name)

		if store.Exists(name) {
			s.reporter.Skipped(path)
			logger.LogDownload(log, path, img.URL, true, nil)
			summary.Skipped = append(summary.Skipped, path)
			continue
		}

		data, err := s.client.FetchImage(ctx, img.URL)
		if err != nil {
			logger.LogDownload(log, path, img.URL, false, err)
			return nil, err
		}

		n, err := store.Save(bytes.NewReader(data), name)
		if err != nil {
			logger.LogDownload(log, path, img.URL, false, err)
			return nil, err
		}

		s.reporter.Downloaded(path)
		logger.LogDownload(log, path, img.URL, false, nil)
		summary.Downloaded = append(summary.Downloaded, path)
		summary.Bytes += n

		if err := s.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	summary.Duration = time.Since(start)
	log.InfoWithFields("Article download finished", map[string]interface{}{
		"downloaded": len(summary.Downloaded),
		"skipped":    len(summary.Skipped),
		"bytes":      summary.Bytes,
		"duration":   summary.Duration.String(),
	})

	return summary, nil
}
