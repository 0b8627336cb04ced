package cli

import (
	"github.com/spf13/cobra"

	"github.com/carbonex/footprint/internal/config"
)

func newFactorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factors",
		Short: "Emission factor commands",
	}
	cmd.AddCommand(NewFactorsLookupCmd())
	return cmd
}

// NewFactorsLookupCmd creates the factors lookup command.
func NewFactorsLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Resolve an emission factor the way an assessment would",
		RunE:  runFactorsLookup,
	}

	cmd.Flags().String("category", "", "factor category (fuel, electricity, transport, ...)")
	cmd.Flags().String("subcategory", "", "factor subcategory (natural_gas_commercial, grid_us_national, ...)")
	cmd.Flags().Int("scope", 1, "GHG Protocol scope (1-3)")
	cmd.Flags().String("region", "", "region code (defaults to the configured region)")
	cmd.Flags().String("factors-file", "", "YAML emission factor dataset")
	cmd.Flags().String("database-url", "", "PostgreSQL factor store")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("subcategory")

	return cmd
}

func runFactorsLookup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)

	category, _ := cmd.Flags().GetString("category")
	subcategory, _ := cmd.Flags().GetString("subcategory")
	scope, _ := cmd.Flags().GetInt("scope")
	region, _ := cmd.Flags().GetString("region")
	if region == "" {
		region = cfg.DefaultRegion
	}

	resolver, pool, err := buildResolver(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	factor, err := resolver.Resolve(ctx, category, subcategory, scope, region)
	if err != nil {
		return err
	}

	cmd.Printf("%s/%s (scope %d, %s): %g kg CO2e per %s\n",
		factor.Category, factor.Subcategory, factor.Scope, factor.Region,
		factor.Factor, factor.Unit)
	cmd.Printf("Source: %s (%s, %d)\n", factor.Source, factor.Provenance, factor.Year)
	return nil
}
