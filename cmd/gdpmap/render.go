package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gdpmap/internal/config"
	"github.com/JonMunkholm/gdpmap/internal/core"
	"github.com/JonMunkholm/gdpmap/internal/database"
	"github.com/JonMunkholm/gdpmap/internal/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var years []string
	var all bool
	var outDir string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render world maps to SVG files",
		Long: `Render one world map per year to <out-dir>/isp_gdp_world_name_<year>.svg.

Without --year the years in RENDER_YEARS are rendered (1960, 1980, 2000 and
2010 by default). --all renders every year from the gdpinfo min_year to
max_year instead. Rendering stops at the first year that fails; files for
earlier years are kept. When DATABASE_URL is set each render is recorded.

Example: gdpmap render --year 1960 --year 2010 --out-dir maps`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case all && len(years) > 0:
				return fmt.Errorf("--all and --year cannot be combined")
			case all:
				years = a.info.Years()
			case len(years) == 0:
				years = a.cfg.Render.Years
			}
			for _, y := range years {
				if !config.IsYear(y) {
					return fmt.Errorf("invalid year %q", y)
				}
			}
			if outDir == "" {
				outDir = a.cfg.Render.OutputDir
			}
			return runRender(cmd, a, years, outDir)
		},
	}

	cmd.Flags().StringSliceVar(&years, "year", nil, "Year to render; repeat or comma-separate for several")
	cmd.Flags().BoolVar(&all, "all", false, "Render every year in the gdpinfo year range")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default from RENDER_OUTPUT_DIR)")
	return cmd
}

func runRender(cmd *cobra.Command, a *app, years []string, outDir string) error {
	ctx := cmd.Context()

	history, closeHistory, err := openHistory(ctx, a.cfg.Database)
	if err != nil {
		return err
	}
	defer closeHistory()

	svc := core.NewService(render.NewSVGRenderer(), history)
	for _, year := range years {
		out := filepath.Join(outDir, svc.OutputName(year))
		rec, err := svc.RenderWorldMap(ctx, a.info, a.codes, year, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: wrote %s (%d with data, %d not found, %d no data)\n",
			year, rec.OutputPath, rec.Matched, rec.NotFound, rec.NoData)
	}
	return nil
}

// openHistory returns the history store for db. Without a database URL it
// returns a nil store, which the service treats as disabled.
func openHistory(ctx context.Context, db config.DatabaseConfig) (core.HistoryStore, func(), error) {
	if !db.Enabled() {
		return nil, func() {}, nil
	}

	pool, err := database.Open(ctx, db)
	if err != nil {
		return nil, nil, err
	}

	store := core.NewPgHistoryStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Debug("render history enabled")
	return store, pool.Close, nil
}
