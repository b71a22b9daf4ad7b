package main

import (
	"context"
	"fmt"
	"os"
	"reviewcrawler/config"
	"reviewcrawler/internal/app/crawler"
	"reviewcrawler/internal/app/report"
	"reviewcrawler/internal/app/requester"
	"reviewcrawler/internal/app/storage"
	"reviewcrawler/internal/usecase"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	configPath string
	productID  string
	maxPages   int
	delayMin   float64
	delayMax   float64
	timeout    int
	outFile    string
	debug      bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "reviewcrawler",
		Short:        "Collects product reviews from a paginated listing and saves them as text",
		RunE:         run,
		SilenceUsage: true,
	}
	fl := rootCmd.Flags()
	fl.StringVar(&flags.configPath, "config-path", "config/config.toml", "path to config file in .toml format")
	fl.StringVar(&flags.productID, "product-id", "", "product to collect reviews for")
	fl.IntVar(&flags.maxPages, "max-pages", 0, "maximum number of pages to fetch")
	fl.Float64Var(&flags.delayMin, "delay-min", -1, "minimum delay between pages in seconds")
	fl.Float64Var(&flags.delayMax, "delay-max", -1, "maximum delay between pages in seconds")
	fl.IntVar(&flags.timeout, "timeout", 0, "request timeout in seconds")
	fl.StringVar(&flags.outFile, "out", "", "destination file for the collected reviews")
	fl.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(flags.debug)
	if err != nil {
		return fmt.Errorf("can't initialize logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(flags.configPath, logger)
	if err != nil {
		return err
	}
	applyFlags(cfg, cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var r usecase.Requester = requester.NewRequester(
		time.Duration(cfg.ReqTimeout)*time.Second, cfg.Headers.Map(), logger, nil)

	cr, err := crawler.NewCrawler(r, logger, crawler.Config{
		StartURL: cfg.StartURL(),
		SiteRoot: cfg.Site,
		MaxPages: cfg.MaxPages,
		DelayMin: secondsToDuration(cfg.DelayMin),
		DelayMax: secondsToDuration(cfg.DelayMax),
	})
	if err != nil {
		return err
	}

	reviews := cr.Run(context.Background())

	report.PrintPreview(os.Stdout, reviews, logger)

	var st usecase.Storer = storage.NewFileStorer(logger)
	if err := st.Save(reviews, cfg.OutFile); err != nil {
		return fmt.Errorf("save reviews: %w", err)
	}
	return nil
}

// applyFlags puts explicitly set command-line flags on top of the file and
// environment overlays.
func applyFlags(cfg *config.Config, cmd *cobra.Command) {
	set := cmd.Flags().Changed
	if set("product-id") {
		cfg.ProductID = flags.productID
	}
	if set("max-pages") {
		cfg.MaxPages = flags.maxPages
	}
	if set("delay-min") {
		cfg.DelayMin = flags.delayMin
	}
	if set("delay-max") {
		cfg.DelayMax = flags.delayMax
	}
	if set("timeout") {
		cfg.ReqTimeout = flags.timeout
	}
	if set("out") {
		cfg.OutFile = flags.outFile
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
