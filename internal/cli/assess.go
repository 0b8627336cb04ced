package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonex/footprint/internal/assessdb"
	"github.com/carbonex/footprint/internal/config"
	"github.com/carbonex/footprint/internal/engine"
	"github.com/carbonex/footprint/internal/factors"
	"github.com/carbonex/footprint/internal/factors/pgstore"
	"github.com/carbonex/footprint/internal/ingest"
)

func newAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assessment commands",
	}
	cmd.AddCommand(NewAssessRunCmd())
	return cmd
}

// NewAssessRunCmd creates the assess run command.
func NewAssessRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate an assessment from an activity data file",
		RunE:  runAssess,
	}

	cmd.Flags().String("input", "", "activity data file (YAML or JSON)")
	cmd.Flags().String("region", "", "override the assessment region")
	cmd.Flags().String("output", "table", "output format: table or json")
	cmd.Flags().String("factors-file", "", "YAML emission factor dataset")
	cmd.Flags().String("database-url", "", "PostgreSQL factor and assessment store")
	cmd.Flags().Bool("save", false, "persist the assessment (requires a database)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runAssess(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	inputPath, _ := cmd.Flags().GetString("input")
	outputFormat, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	if outputFormat != "table" && outputFormat != "json" {
		return fmt.Errorf("unknown output format %q (want table or json)", outputFormat)
	}

	file, err := ingest.LoadFile(ctx, inputPath)
	if err != nil {
		return err
	}

	input := file.Input()
	if region, _ := cmd.Flags().GetString("region"); region != "" {
		input.Region = region
	} else if input.Region == "" {
		input.Region = cfg.DefaultRegion
	}

	eng, pool, err := buildEngine(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	result, err := eng.Calculate(ctx, input)
	if err != nil {
		return err
	}

	if save {
		if pool == nil {
			return fmt.Errorf("--save requires a database (set --database-url or %s)", config.EnvDatabaseURL)
		}
		store := assessdb.NewPostgres(pool.Pool())
		rec := assessdb.NewRecord(input, result)
		if err := store.SaveAssessment(ctx, rec); err != nil {
			return err
		}
		cmd.Printf("Saved assessment %s\n", rec.ID)
	}

	if outputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return renderResult(cmd.OutOrStdout(), input, result)
}

// buildEngine assembles the engine over the resolver chain selected
// by flags and config. The returned store is nil unless a database
// connection was opened.
func buildEngine(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*engine.Engine, *pgstore.Store, error) {
	thresholds := engine.Thresholds{
		LargeFootprintTonnes: cfg.Thresholds.LargeFootprintTonnes,
		DominantScopeShare:   cfg.Thresholds.DominantScopeShare,
		ConfidenceFloor:      cfg.Thresholds.ConfidenceFloor,
	}

	resolver, store, err := buildResolver(ctx, cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(resolver, thresholds), store, nil
}

// buildResolver picks the factor source: database store when a URL is
// set, YAML file store when a dataset is named, built-in factors
// otherwise.
func buildResolver(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*factors.Resolver, *pgstore.Store, error) {
	databaseURL, _ := cmd.Flags().GetString("database-url")
	if databaseURL == "" {
		databaseURL = cfg.DatabaseURL
	}
	if databaseURL != "" {
		store, err := pgstore.Connect(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return factors.NewResolver(store), store, nil
	}

	factorsFile, _ := cmd.Flags().GetString("factors-file")
	if factorsFile == "" {
		factorsFile = cfg.FactorsFile
	}
	if factorsFile != "" {
		store, err := factors.LoadFile(factorsFile)
		if err != nil {
			return nil, nil, err
		}
		return factors.NewResolver(store), nil, nil
	}

	return factors.NewResolver(nil), nil, nil
}
