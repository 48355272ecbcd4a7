package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/gdpmap/internal/config"
	"github.com/JonMunkholm/gdpmap/internal/logging"
)

// Service runs the load, resolve and render pipeline. It holds no per-render
// state and is safe for concurrent use when its renderer and store are.
type Service struct {
	renderer MapRenderer
	history  HistoryStore
}

// NewService creates a Service. A nil history disables render history.
func NewService(renderer MapRenderer, history HistoryStore) *Service {
	if history == nil {
		history = NopHistoryStore{}
	}
	return &Service{
		renderer: renderer,
		history:  history,
	}
}

// History returns the store render records are written to.
func (s *Service) History() HistoryStore {
	return s.history
}

// OutputName is the file name a map for year is written to.
func (s *Service) OutputName(year string) string {
	return "isp_gdp_world_name_" + year + s.renderer.Extension()
}

// LoadTable reads the GDP file described by info.
func (s *Service) LoadTable(info config.GDPInfo) (*Table, error) {
	return LoadTable(info.GDPFile, info.CountryName, info.SeparatorRune(), info.QuoteRune())
}

// ReconcileNames reports which codes have a row in the GDP file.
func (s *Service) ReconcileNames(ctx context.Context, info config.GDPInfo, codes CodeNameMap) (ReconciliationResult, error) {
	if err := ctx.Err(); err != nil {
		return ReconciliationResult{}, err
	}

	table, err := s.LoadTable(info)
	if err != nil {
		return ReconciliationResult{}, fmt.Errorf("reconcile: %w", err)
	}

	res := Reconcile(codes, table.Names())
	logging.FromContext(ctx).Debug("names reconciled",
		"gdp_file", info.GDPFile,
		"matched", len(res.Matched),
		"unmatched", res.Unmatched.Len(),
	)
	return res, nil
}

// ResolveYear loads the GDP file and resolves year for every code. year is
// any column label of the file; a label outside the file's declared range is
// logged but still resolved.
func (s *Service) ResolveYear(ctx context.Context, info config.GDPInfo, codes CodeNameMap, year string) (YearResolution, error) {
	if err := ctx.Err(); err != nil {
		return YearResolution{}, err
	}

	logger := logging.WithFields(ctx, "year", year, "gdp_file", info.GDPFile)
	if !info.InRange(year) {
		logger.Warn("year outside gdpinfo range",
			"min_year", info.MinYear,
			"max_year", info.MaxYear,
		)
	}

	table, err := s.LoadTable(info)
	if err != nil {
		return YearResolution{}, fmt.Errorf("resolve %s: %w", year, err)
	}

	res, err := Resolve(table, codes, year)
	if err != nil {
		return YearResolution{}, fmt.Errorf("resolve %s: %w", year, err)
	}

	logger.Debug("year resolved",
		"values", len(res.Values),
		"not_found", res.NotFound.Len(),
		"no_data", res.NoData.Len(),
	)
	return res, nil
}

// WriteMap resolves year and renders the map straight to w. Nothing is
// written to w if resolution fails.
func (s *Service) WriteMap(ctx context.Context, info config.GDPInfo, codes CodeNameMap, year string, w io.Writer) (YearResolution, error) {
	res, err := s.ResolveYear(ctx, info, codes, year)
	if err != nil {
		return YearResolution{}, err
	}
	if err := s.renderer.Render(ctx, w, NewMapData(res, codes)); err != nil {
		return YearResolution{}, fmt.Errorf("render map %s: %w", year, err)
	}
	return res, nil
}

// RenderWorldMap draws the map for year and writes it to outputPath.
//
// The image is rendered into a temporary file next to outputPath and
// renamed into place, so on any error no output file is left behind and an
// existing file at outputPath is untouched. Recording history is best
// effort: a store failure is logged and the record is still returned.
func (s *Service) RenderWorldMap(ctx context.Context, info config.GDPInfo, codes CodeNameMap, year, outputPath string) (*RenderRecord, error) {
	start := time.Now()

	res, err := s.ResolveYear(ctx, info, codes, year)
	if err != nil {
		return nil, err
	}

	if err := writeAtomic(outputPath, func(w io.Writer) error {
		return s.renderer.Render(ctx, w, NewMapData(res, codes))
	}); err != nil {
		return nil, fmt.Errorf("render map %s: %w", year, err)
	}

	ip, ua := ClientFromContext(ctx)
	rec := &RenderRecord{
		Year:       year,
		GDPFile:    info.GDPFile,
		OutputPath: outputPath,
		Matched:    len(res.Values),
		NotFound:   res.NotFound.Len(),
		NoData:     res.NoData.Len(),
		DurationMs: time.Since(start).Milliseconds(),
		ClientIP:   ip,
		UserAgent:  ua,
	}

	logger := logging.WithFields(ctx, "year", year, "output", outputPath)
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("failed to record render history", "error", err)
	}

	logger.Info("map rendered",
		"values", rec.Matched,
		"not_found", rec.NotFound,
		"no_data", rec.NoData,
		"duration_ms", rec.DurationMs,
	)
	return rec, nil
}

// writeAtomic calls write with a buffered temp file in the directory of path
// and renames the temp file to path once write and the flush succeed.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return err
	}

	bw := bufio.NewWriter(tmp)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
