package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gdpmap/internal/core"
	"github.com/JonMunkholm/gdpmap/internal/render"
)

type resolveOutput struct {
	Year     string             `json:"year"`
	Values   map[string]float64 `json:"values"`
	NotFound []string           `json:"notFound"`
	NoData   []string           `json:"noData"`
}

func newResolveCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resolve [year]",
		Short: "Show each country's GDP for a year",
		Long: `Resolve every country code for a year into one of three groups: a GDP
value, not found in the GDP file, or no data for the year.

The table shows GDP in current US dollars; --json prints the log10 values
used for coloring.

Example: gdpmap resolve 1980 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := core.NewService(render.NewSVGRenderer(), nil)
			res, err := svc.ResolveYear(cmd.Context(), a.info, a.codes, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resolveOutput{
					Year:     res.Year,
					Values:   res.Values,
					NotFound: res.NotFound.Sorted(),
					NoData:   res.NoData.Sorted(),
				})
			}
			return printResolution(cmd, a.codes, res)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func printResolution(cmd *cobra.Command, codes core.CodeNameMap, res core.YearResolution) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tGDP")
	for _, code := range codes.Codes() {
		var gdp string
		switch {
		case res.NotFound.Has(code):
			gdp = "not found"
		case res.NoData.Has(code):
			gdp = "no data"
		default:
			v, ok := res.Values[code]
			if !ok {
				continue
			}
			gdp = render.FormatGDP(v)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", code, codes[code], gdp)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s: %d, %s: %d, %s: %d\n",
		core.SeriesValues(res.Year), len(res.Values),
		core.SeriesNotFound, res.NotFound.Len(),
		core.SeriesNoData, res.NoData.Len())
	return nil
}
