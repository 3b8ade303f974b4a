package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"telegraphdl/pkg/config"
	tgerrors "telegraphdl/pkg/errors"
	"telegraphdl/pkg/logger"
	"telegraphdl/pkg/scraper"
	"telegraphdl/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	noColor    bool
	verbose    bool
	delay      time.Duration
	timeout    time.Duration
)

// rootCmd downloads the images of one article
var rootCmd = &cobra.Command{
	Use:   "telegraphdl [flags] <output_path> <external_id> <url>",
	Short: "Download every image of a telegra.ph article",
	Long: `telegraphdl saves the images embedded in a telegra.ph article.

Each image is written to <output_path> as {external_id}_{article}_{image}
with everything but letters, digits and spaces removed. Images that are
already present are skipped, so an interrupted run can simply be repeated.

Example:
  telegraphdl ./out run1 https://telegra.ph/Sample-Article-01-01`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	Args:          cobra.ExactArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDownload,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.PrintError("Error", err)
		if tgerrors.IsTransient(err) {
			fmt.Fprintln(os.Stderr, ui.Yellow("The failure may be temporary. Re-running skips images already saved."))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./.telegraphdl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request (same as --log-level debug)")
	rootCmd.Flags().DurationVar(&delay, "delay", time.Second, "pause after each downloaded image")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "per-request timeout (0 disables it)")

	rootCmd.SetVersionTemplate(`telegraphdl {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// collectFlags returns only the flags the user actually set, so config file
// and environment values are not overwritten by flag defaults.
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	if cmd.Flags().Changed("log-level") {
		flags["log-level"] = logLevel
	}
	if verbose {
		flags["log-level"] = "debug"
	}
	if f := cmd.Flags().Lookup("delay"); f != nil && f.Changed {
		flags["delay"] = delay
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		flags["timeout"] = timeout
	}
	if noColor {
		flags["color"] = false
	}

	return flags
}

// loadConfig loads configuration and initializes logging and colours
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile, collectFlags(cmd))
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	ui.SetColorEnabled(cfg.UI.ColorEnabled)

	return cfg, nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	outputDir, externalID, articleURL := args[0], args[1], args[2]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.GetLogger()
	log.InfoWithFields("telegraphdl starting", map[string]interface{}{
		"version":     version,
		"output_dir":  outputDir,
		"external_id": externalID,
		"url":         articleURL,
	})

	s, err := scraper.NewFromConfig(cfg, scraper.WithReporter(ui.NewConsoleReporter(cmd.OutOrStdout())))
	if err != nil {
		return fmt.Errorf("failed to initialize downloader: %w", err)
	}

	summary, err := s.Download(cmd.Context(), outputDir, externalID, articleURL)
	if err != nil {
		return err
	}

	log.InfoWithFields("Run completed", map[string]interface{}{
		"downloaded": len(summary.Downloaded),
		"skipped":    len(summary.Skipped),
	})
	return nil
}
