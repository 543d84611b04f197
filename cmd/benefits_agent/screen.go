package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/benefits-navigator/internal/config"
	"github.com/jonathan/benefits-navigator/internal/eligibility"
	"github.com/jonathan/benefits-navigator/internal/extraction"
	"github.com/jonathan/benefits-navigator/internal/normalize"
	"github.com/jonathan/benefits-navigator/internal/observability"
	"github.com/jonathan/benefits-navigator/internal/schemas"
	"github.com/jonathan/benefits-navigator/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen a household for benefit eligibility",
	Long: `Screens a free-text household description (or a structured JSON file) against
SNAP, Medicaid, LIHEAP, WIC, School Meals, and Medicare Savings Program rules
and prints the multi-program determination as JSON.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runScreen,
}

var (
	screenConfigPath   string
	screenText         string
	screenInput        string
	screenStructured   string
	screenSchema       string
	screenBatchDir     string
	screenWorkers      int
	screenDefaultHours float64
	screenFPLYear      int
	screenVerbose      bool
)

func init() {
	screenCmd.Flags().StringVar(&screenConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	screenCmd.Flags().StringVarP(&screenText, "text", "t", "", "Household narrative given directly on the command line")
	screenCmd.Flags().StringVarP(&screenInput, "input", "i", "", "Path to a narrative text file")
	screenCmd.Flags().StringVar(&screenStructured, "structured", "", "Path to a structured-input JSON file")
	screenCmd.Flags().StringVar(&screenSchema, "schema", "", "Path to the structured-input JSON Schema")
	screenCmd.Flags().StringVar(&screenBatchDir, "batch", "", "Directory of .txt narratives to screen concurrently")
	screenCmd.Flags().IntVar(&screenWorkers, "workers", 0, "Concurrent screenings in batch mode")
	screenCmd.Flags().Float64Var(&screenDefaultHours, "default-hours", 0, "Weekly hours assumed for hourly income with no stated hours")
	screenCmd.Flags().IntVar(&screenFPLYear, "fpl-year", 0, "Poverty guideline year")
	screenCmd.Flags().BoolVarP(&screenVerbose, "verbose", "v", false, "Print formatted screening detail before the JSON result")

	rootCmd.AddCommand(screenCmd)
}

// screenOutput is the JSON document printed for a single screening.
type screenOutput struct {
	Result   *types.MultiProgramResult `json:"result"`
	Decision *types.DecisionMap        `json:"decision"`
}

func runScreen(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if screenConfigPath != "" {
		loadedCfg, err := config.LoadConfig(screenConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// CLI overrides win over config file values
	if cmd.Flags().Changed("input") {
		cfg.Input = screenInput
	}
	if cmd.Flags().Changed("structured") {
		cfg.Structured = screenStructured
	}
	if cmd.Flags().Changed("schema") {
		cfg.Schema = screenSchema
	}
	if cmd.Flags().Changed("default-hours") {
		cfg.DefaultHours = screenDefaultHours
	}
	if cmd.Flags().Changed("fpl-year") {
		cfg.FPLYear = screenFPLYear
	}
	if cmd.Flags().Changed("workers") {
		cfg.BatchWorkers = screenWorkers
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = screenVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Schema:       "schemas/structured_run.schema.json",
		BatchWorkers: 4,
	})

	extractor, evaluator, err := buildEngines(cfg)
	if err != nil {
		return err
	}

	if screenBatchDir != "" {
		results, err := runBatch(cmd.Context(), screenBatchDir, cfg.BatchWorkers, extractor, evaluator)
		if err != nil {
			return err
		}
		return printJSON(os.Stdout, results)
	}

	facts, err := loadFacts(cfg, screenText, extractor)
	if err != nil {
		return err
	}

	result := evaluator.Aggregate(facts)
	decision := evaluator.DecisionMap(facts)

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintFacts(facts)
		printer.PrintProgramResults(result.Programs)
		printer.PrintSummary(result)
	}

	return printJSON(os.Stdout, screenOutput{Result: result, Decision: decision})
}

// buildEngines constructs the extraction and eligibility engines from config.
func buildEngines(cfg config.Config) (*extraction.Engine, *eligibility.Engine, error) {
	fpl := eligibility.DefaultFPLTable()
	if cfg.FPLYear != 0 && cfg.FPLYear != fpl.Year {
		return nil, nil, fmt.Errorf("no poverty guidelines loaded for year %d (have %d)", cfg.FPLYear, fpl.Year)
	}

	norm := normalize.NewWithOptions(nil, cfg.DefaultHours)
	return extraction.NewEngineWithNormalizer(norm), eligibility.NewEngine(fpl), nil
}

// loadFacts produces a Facts record from exactly one of the input sources.
func loadFacts(cfg config.Config, text string, extractor *extraction.Engine) (*types.Facts, error) {
	sources := 0
	if text != "" {
		sources++
	}
	if cfg.Input != "" {
		sources++
	}
	if cfg.Structured != "" {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("one of --text, --input, or --structured is required")
	}
	if sources > 1 {
		return nil, fmt.Errorf("--text, --input, and --structured are mutually exclusive; provide only one")
	}

	switch {
	case text != "":
		return extractor.Extract(text), nil

	case cfg.Input != "":
		data, err := os.ReadFile(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return extractor.Extract(string(data)), nil

	default:
		return loadStructuredFacts(cfg, extractor)
	}
}

// loadStructuredFacts validates a structured-input file against the JSON
// Schema and normalizes it into Facts.
func loadStructuredFacts(cfg config.Config, extractor *extraction.Engine) (*types.Facts, error) {
	schemaPath := cfg.Schema
	if _, err := os.Stat(schemaPath); err != nil {
		if resolved := schemas.ResolveSchemaPath(schemaPath); resolved != "" {
			schemaPath = resolved
		}
	}

	if err := schemas.ValidateJSON(schemaPath, cfg.Structured); err != nil {
		return nil, fmt.Errorf("structured input failed schema validation: %w", err)
	}

	data, err := os.ReadFile(cfg.Structured)
	if err != nil {
		return nil, fmt.Errorf("failed to read structured input: %w", err)
	}

	var req types.StructuredRunRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse structured input: %w", err)
	}
	// org_id is required by the API schema but unused in one-shot mode;
	// tolerate its absence here.
	if req.OrgID == "" {
		req.OrgID = "cli"
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid structured input: %w", err)
	}

	return extractor.FromStructured(&req), nil
}

// runBatch screens every .txt file in dir concurrently and returns results
// keyed by file name.
func runBatch(ctx context.Context, dir string, workers int, extractor *extraction.Engine, evaluator *eligibility.Engine) (map[string]*types.MultiProgramResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no .txt files found in %s", dir)
	}

	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	results := make(map[string]*types.MultiProgramResult, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			result := evaluator.Aggregate(extractor.Extract(string(data)))

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printJSON(out *os.File, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
