package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kamusis/gendex/internal/detector"
)

var (
	flagCountry string
	flagJSON    bool
)

var genderCmd = &cobra.Command{
	Use:   "gender <name>...",
	Short: "Print the most frequent gender for each name",
	Long: `Print the most frequent gender for each name.

With --country the answer only considers that country's column. The country
is a dictionary identifier (great_britain) or an ISO-3166 code (GB).

Example:
  gendex gender Sally Bob
  gendex gender Jamie --country GB`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGender,
}

var detailCmd = &cobra.Command{
	Use:   "detail <name>",
	Short: "List every (gender, country, frequency) observation for a name",
	Long: `List the observations recorded for a name, most frequent first.

Frequencies are the dictionary's frequency classes divided by 13, so 1.00 is
the most common class.

Example:
  gendex detail Sally
  gendex detail Jamie -c great_britain --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

var knownCmd = &cobra.Command{
	Use:   "known <name>...",
	Short: "Check whether names appear in the dictionary",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runKnown,
}

func init() {
	for _, c := range []*cobra.Command{genderCmd, detailCmd} {
		c.Flags().StringVarP(&flagCountry, "country", "c", "", "Restrict to one country (identifier or ISO-3166 code)")
		c.Flags().BoolVar(&flagJSON, "json", false, "Print JSON")
	}
	rootCmd.AddCommand(genderCmd, detailCmd, knownCmd)
}

type genderResult struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Country string `json:"country,omitempty"`
}

func runGender(_ *cobra.Command, args []string) error {
	d, err := loadDetector()
	if err != nil {
		return err
	}

	results := make([]genderResult, 0, len(args))
	for _, name := range args {
		g, err := d.GenderOf(name, flagCountry)
		if err != nil {
			return err
		}
		results = append(results, genderResult{Name: name, Gender: g.String(), Country: flagCountry})
	}

	if flagJSON {
		return writeJSON(results)
	}
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Gender)
	}
	return w.Flush()
}

func runDetail(_ *cobra.Command, args []string) error {
	d, err := loadDetector()
	if err != nil {
		return err
	}
	name := args[0]
	obs, err := d.GenderDetailOf(name, flagCountry)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(obs)
	}
	printDetail(name, d.NameKnown(name), obs)
	return nil
}

func printDetail(name string, known bool, obs []detector.Observation) {
	fmt.Fprintf(stdout, "\ngendex detail %q\n\n", name)
	if !known {
		printMiss("", fmt.Sprintf("%s is not in the dictionary (reported as %s)", name, obs[0].Gender))
		return
	}
	if len(obs) == 0 {
		printSkip("", "no observations for this country")
		return
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tGENDER\tCOUNTRY\tFREQ\n")
	for i, o := range obs {
		fmt.Fprintf(w, "  %d.\t%s\t%s\t%.2f\n", i+1, o.Gender, o.Country, o.Frequency)
	}
	_ = w.Flush()
}

func runKnown(_ *cobra.Command, args []string) error {
	d, err := loadDetector()
	if err != nil {
		return err
	}
	var missing []string
	for _, name := range args {
		if d.NameKnown(name) {
			printOK(name, "known")
		} else {
			printMiss(name, "not in dictionary")
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d of %d names not found: %s", len(missing), len(args), strings.Join(missing, ", "))
	}
	return nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
