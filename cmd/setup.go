package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xhit/go-str2duration/v2"

	"github.com/naka-gawa/gh-activity/internal/config"
	"github.com/naka-gawa/gh-activity/internal/domain"
	"github.com/naka-gawa/gh-activity/internal/gateway"
	"github.com/naka-gawa/gh-activity/internal/logger"
)

// runEnv holds everything a command needs for one run.
type runEnv struct {
	client      gateway.Client
	logger      *logrus.Logger
	cutoff      domain.Cutoff
	concurrency int
}

// parseTimeframe accepts Go durations plus day and week units, e.g. "7d" or "2w3d".
func parseTimeframe(s string) (time.Duration, error) {
	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeframe %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeframe must be positive, got %q", s)
	}
	return d, nil
}

// setup loads configuration, builds the logger and the GitHub gateway, and
// fixes the cutoff for the whole run.
func setup(cmd *cobra.Command, timeframe string) (*runEnv, error) {
	window, err := parseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	log := logger.NewWithOutput(cmd.ErrOrStderr(), verbose, cfg.LogLevel)

	concurrency := cfg.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	if concurrency < 0 {
		return nil, fmt.Errorf("concurrency must not be negative, got %d", concurrency)
	}

	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		Token:   cfg.GitHub.Token,
		BaseURL: cfg.GitHub.APIURL,
		Timeout: cfg.HTTPTimeout,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	cutoff := domain.NewCutoff(time.Now(), window)
	log.WithField("cutoff", cutoff.Time().Format(time.RFC3339)).Debug("Cutoff fixed for this run")

	return &runEnv{
		client:      githubGateway,
		logger:      log,
		cutoff:      cutoff,
		concurrency: concurrency,
	}, nil
}
