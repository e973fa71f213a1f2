// Package cmd implements the alp command line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/telfer/alp/internal/config"
	"github.com/telfer/alp/internal/keyring"
	"github.com/telfer/alp/pkg/alpaca"
)

var Version = "dev"

var (
	jsonOutput bool
	paperFlag  bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "alp",
	Short:   "Alpaca trading CLI",
	Long:    `A CLI for inspecting your Alpaca account, assets, watchlists, and market hours.`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&paperFlag, "paper", false, "Use the paper trading environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log API requests to stderr")
}

// Execute runs the root command.
func Execute() {
	// A .env file can supply ALP_LIVE_SECRET_KEY / ALP_PAPER_SECRET_KEY
	// for headless use; ignore when absent.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// clientOptions holds everything a command needs to reach the API.
// Commands receive a loader function so tests can inject fixed options.
type clientOptions struct {
	liveKeyID    string
	liveSecret   string
	paperKeyID   string
	paperSecret  string
	liveBaseURL  string
	paperBaseURL string
	paper        bool
	jsonMode     bool
	logger       logrus.FieldLogger
}

// optionsLoader produces clientOptions at command run time.
type optionsLoader func() (clientOptions, error)

// client builds an API client from the options.
func (o clientOptions) client() *alpaca.Client {
	c := alpaca.New(alpaca.Options{
		LiveKeyID:    o.liveKeyID,
		LiveSecret:   o.liveSecret,
		PaperKeyID:   o.paperKeyID,
		PaperSecret:  o.paperSecret,
		LiveBaseURL:  o.liveBaseURL,
		PaperBaseURL: o.paperBaseURL,
		Logger:       o.logger,
	})
	if o.paper {
		c.EnablePaperTrading()
	} else {
		c.EnableLiveTrading()
	}
	return c
}

// loadClientOptions assembles options from the config file, the system
// keyring (with env overrides), and the persistent flags.
func loadClientOptions() (clientOptions, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return clientOptions{}, fmt.Errorf("failed to load config: %w", err)
	}

	store := keyring.NewEnvStore(keyring.NewSystemStore())

	opts := clientOptions{
		liveKeyID:    cfg.LiveKeyID,
		paperKeyID:   cfg.PaperKeyID,
		liveBaseURL:  cfg.LiveBaseURL,
		paperBaseURL: cfg.PaperBaseURL,
		paper:        paperFlag || cfg.Environment == config.EnvPaper,
		jsonMode:     jsonOutput,
	}

	if cfg.LiveKeyID != "" {
		secret, err := store.Get(keyring.ServiceName, keyring.KeyLiveSecret)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return clientOptions{}, fmt.Errorf("failed to read live secret: %w", err)
		}
		opts.liveSecret = secret
	}
	if cfg.PaperKeyID != "" {
		secret, err := store.Get(keyring.ServiceName, keyring.KeyPaperSecret)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return clientOptions{}, fmt.Errorf("failed to read paper secret: %w", err)
		}
		opts.paperSecret = secret
	}

	if opts.liveKeyID == "" && opts.paperKeyID == "" {
		return clientOptions{}, fmt.Errorf("no API keys configured (run 'alp configure')")
	}

	if verbose {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
		opts.logger = logger
	}

	return opts, nil
}
