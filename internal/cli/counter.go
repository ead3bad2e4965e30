package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"folio/pkg/counter"
)

func newCounterCmd() *cobra.Command {
	var pad int

	cmd := &cobra.Command{
		Use:   "counter <system> <n>...",
		Short: "Format list counters",
		Long:  `Format list counters as they would appear in a list marker. System is a list-style-type keyword (decimal, lower-roman, upper-alpha, ...) or an HTML type attribute (1, a, A, i, I).`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			system, ok := counter.ParseSystem(args[0])
			if !ok {
				return fmt.Errorf("unknown counter system %q", args[0])
			}
			out := cmd.OutOrStdout()
			for _, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid counter value %q: %w", arg, err)
				}
				fmt.Fprintln(out, counter.Format(n, system, pad))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pad, "pad", 0, "zero-pad width for decimal-leading-zero")
	return cmd
}
