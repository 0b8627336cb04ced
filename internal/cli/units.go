package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/carbonex/footprint/internal/units"
)

const convertArgCount = 3

func newUnitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "units",
		Short: "Unit conversion commands",
	}
	cmd.AddCommand(NewUnitsConvertCmd())
	return cmd
}

// NewUnitsConvertCmd creates the units convert command. The command is
// a display helper: pairs with no conversion path echo the value
// unchanged instead of failing.
func NewUnitsConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a quantity between activity units",
		Args:  cobra.ExactArgs(convertArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parsing value %q: %w", args[0], err)
			}

			converted := units.ConvertLenient(value, args[1], args[2])
			cmd.Printf("%g %s = %g %s\n", value, args[1], converted, args[2])
			return nil
		},
	}
	return cmd
}
