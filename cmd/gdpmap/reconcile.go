package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gdpmap/internal/core"
	"github.com/JonMunkholm/gdpmap/internal/render"
)

func newReconcileCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "List countries whose name is missing from the GDP file",
		Long: `Match each country name against the GDP file's country names and list
the ones that do not match exactly. Matching is case-sensitive.

Example: gdpmap reconcile --gdpinfo isp_gdp.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := core.NewService(render.NewSVGRenderer(), nil)
			res, err := svc.ReconcileNames(cmd.Context(), a.info, a.codes)
			if err != nil {
				return err
			}

			unmatched := res.Unmatched.Sorted()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"matched":   res.Matched,
					"unmatched": unmatched,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "matched %d of %d countries\n", len(res.Matched), len(a.codes))
			for _, code := range unmatched {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%s\n", code, a.codes[code])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
