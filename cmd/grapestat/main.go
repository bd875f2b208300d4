// Package main provides the CLI entry point for grapestat.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/ukaji3/grapestat-go/pkg/grapestat"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/logging"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/models"
	"github.com/ukaji3/grapestat-go/pkg/grapestat/output"
	"go.uber.org/zap"
)

var (
	configPath   string
	dataRoot     string
	beginYear    int
	endYear      int
	skipDownload bool
	concurrency  int
	keepGoing    bool
	sqlitePath   string
	csvCharset   string
	verbose      bool
	jsonLogs     bool

	category   string
	variant    string
	year       int
	outputPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if grapestat.IsFatalRun(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grapestat",
		Short: "Extract grape statistics from USDA California reports",
		Long: `grapestat downloads the USDA NASS California grape crush and acreage
reports and writes one variety by district table per year.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&dataRoot, "data-root", "", "Directory for downloads and output tables")
	pf.StringVar(&sqlitePath, "sqlite", "", "Also store results in this SQLite database")
	pf.StringVar(&csvCharset, "csv-charset", "", "Charset of .csv report sheets: utf-8 or windows-1252")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&jsonLogs, "json-logs", false, "Log as JSON")

	crushCmd := &cobra.Command{
		Use:   "crush",
		Short: "Process crush report tables",
		Args:  cobra.NoArgs,
		RunE:  runCrush,
	}
	crushCmd.Flags().StringVar(&category, "category", string(models.Volume),
		"Crush table: volume, brix, purchased_volume, purchased_brix, price")
	addRangeFlags(crushCmd)

	acreageCmd := &cobra.Command{
		Use:   "acreage",
		Short: "Process acreage report tables",
		Args:  cobra.NoArgs,
		RunE:  runAcreage,
	}
	addRangeFlags(acreageCmd)

	extractCmd := &cobra.Command{
		Use:   "extract [sheet files...]",
		Short: "Extract tables from local report sheets",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVar(&variant, "variant", string(grapestat.VariantCrush), "Report family: crush or acreage")
	extractCmd.Flags().StringVar(&category, "category", string(models.Volume), "Crush table category")
	extractCmd.Flags().IntVar(&year, "year", 0, "Year to label the results with")
	extractCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output directory (default: stdout)")

	rootCmd.AddCommand(crushCmd, acreageCmd, extractCmd)
	return rootCmd
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&beginYear, "begin", 0, "First year (YYYY)")
	cmd.Flags().IntVar(&endYear, "end", 0, "Last year (YYYY)")
	cmd.Flags().BoolVar(&skipDownload, "skip-download", false, "Reuse previously downloaded files")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel downloads")
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "Log a failed year and continue")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(logging.Options{Verbose: verbose, JSON: jsonLogs})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	cobra.OnFinalize(logging.Install(logger))
	return nil
}

// loadConfig merges the config file with flags set on cmd.
func loadConfig(cmd *cobra.Command) (grapestat.Config, error) {
	cfg, err := grapestat.LoadConfig(configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("data-root") {
		cfg.DataRoot = dataRoot
	}
	if flags.Changed("sqlite") {
		cfg.SQLitePath = sqlitePath
	}
	if flags.Changed("csv-charset") {
		cfg.CSVCharset = csvCharset
	}
	if flags.Changed("begin") {
		cfg.BeginYear = beginYear
	}
	if flags.Changed("end") {
		cfg.EndYear = endYear
	}
	if flags.Changed("skip-download") {
		cfg.SkipDownload = skipDownload
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("keep-going") {
		cfg.ContinueOnError = keepGoing
	}
	return cfg, cfg.Validate()
}

func newPipeline(ctx context.Context, cmd *cobra.Command) (*grapestat.Pipeline, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	p := &grapestat.Pipeline{Config: cfg}
	cleanup := func() {}
	if cfg.SQLitePath != "" {
		store, err := output.OpenStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		p.Store = store
		cleanup = func() { store.Close() }
	}
	return p, cleanup, nil
}

func runCrush(cmd *cobra.Command, args []string) error {
	c, ok := models.ParseCategory(category)
	if !ok || c.IsAcreage() {
		return fmt.Errorf("invalid category: %s", category)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p, cleanup, err := newPipeline(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	written, err := p.RunCrush(ctx, c)
	report(written)
	return err
}

func runAcreage(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	p, cleanup, err := newPipeline(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	written, err := p.RunAcreage(ctx)
	report(written)
	return err
}

func runExtract(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	v, err := grapestat.ParseVariant(variant)
	if err != nil {
		return err
	}
	opts := grapestat.Options{Variant: v, Year: year, CSVCharset: csvCharset}
	if v == grapestat.VariantCrush {
		c, ok := models.ParseCategory(category)
		if !ok {
			return fmt.Errorf("invalid category: %s", category)
		}
		opts.Category = c
	}

	results, err := grapestat.Extract(args, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if results == nil {
		zap.L().Warn("no table found")
		return nil
	}

	for _, res := range results {
		if outputPath == "" {
			fmt.Fprintf(os.Stdout, "# %s\n", res.Category)
			if err := output.WriteCSV(os.Stdout, res, opts.AllowList()); err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			continue
		}
		path, err := output.WriteCSVFile(outputPath, res, opts.AllowList())
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Println(path)
	}

	if sqlitePath != "" {
		store, err := output.OpenStore(cmd.Context(), sqlitePath)
		if err != nil {
			return err
		}
		defer store.Close()
		for _, res := range results {
			if err := store.Save(cmd.Context(), res); err != nil {
				return fmt.Errorf("failed to store results: %w", err)
			}
		}
	}
	return nil
}

func report(written []grapestat.Written) {
	for _, w := range written {
		fmt.Println(w.Path)
	}
}
