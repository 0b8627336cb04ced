package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/carbonex/footprint/internal/engine"
)

// renderResult writes the human-readable assessment report.
func renderResult(w io.Writer, input engine.CalculationInput, result *engine.CalculationResult) error {
	title := input.Metadata.OrganizationName
	if input.Metadata.ReportingYear > 0 {
		title = fmt.Sprintf("%s (%d)", title, input.Metadata.ReportingYear)
	}
	fmt.Fprintf(w, "Carbon Footprint Assessment: %s\n", title)
	fmt.Fprintf(w, "Region: %s\n\n", input.Region)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCOPE\tEMISSIONS (t CO2e)\tSHARE")
	shares := result.Summary.EmissionsByScope
	fmt.Fprintf(tw, "Scope 1\t%s\t%s\n",
		engine.FormatTonnes(result.Summary.Scope1Total), engine.FormatPercent(shares.Scope1))
	fmt.Fprintf(tw, "Scope 2\t%s\t%s\n",
		engine.FormatTonnes(result.Summary.Scope2Total), engine.FormatPercent(shares.Scope2))
	fmt.Fprintf(tw, "Scope 3\t%s\t%s\n",
		engine.FormatTonnes(result.Summary.Scope3Total), engine.FormatPercent(shares.Scope3))
	fmt.Fprintf(tw, "TOTAL\t%s\t\n", engine.FormatTonnes(result.Summary.TotalEmissions))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nAverage confidence: %.0f/100\n", result.Summary.AverageConfidence)

	if text := engine.EquivalencyText(result.Summary.TotalEmissions); text != "" {
		fmt.Fprintf(w, "%s\n", text)
	}

	if len(result.Insights) > 0 {
		fmt.Fprintln(w, "\nInsights:")
		for _, ins := range result.Insights {
			fmt.Fprintf(w, "  [%s] %s\n", strings.ToUpper(ins.Priority), ins.Message)
		}
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "  [%s] Scope %d: %s (potential reduction %s)\n",
				strings.ToUpper(rec.Priority), rec.Scope, rec.Action, rec.PotentialReduction)
			fmt.Fprintf(w, "      %s\n", rec.Description)
		}
	}

	return nil
}
