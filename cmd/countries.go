package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/gendex/internal/country"
)

var countriesCmd = &cobra.Command{
	Use:   "countries [id-or-code]...",
	Short: "List dictionary countries or check country identifiers",
	Long: `Without arguments, list the dictionary's countries in column order with
the ISO-3166 codes that map onto each.

With arguments, resolve each identifier or ISO code.

Example:
  gendex countries
  gendex countries GB usa ZZ`,
	RunE: runCountries,
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "COL\tCOUNTRY\tISO\n")
		for i, c := range country.Table() {
			fmt.Fprintf(w, "%d\t%s\t%s\n", i, c, strings.Join(country.Codes(c), " "))
		}
		return w.Flush()
	}

	unknown := 0
	for _, a := range args {
		c, err := country.Resolve(a)
		if err != nil {
			printErr(a, err.Error())
			unknown++
			continue
		}
		printOK(a, string(c))
	}
	if unknown > 0 {
		return fmt.Errorf("%d unknown countr%s", unknown, plural(unknown, "y", "ies"))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
