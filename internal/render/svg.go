// Package render draws GDP maps as SVG.
//
// Each country is a square tile on a coarse world grid (see NewLayout). Tiles
// with a value are colored by quantile bin; tiles whose country is missing
// from the GDP file or has no value for the year use fixed colors. The
// document is assembled from templ components.
package render

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/gdpmap/internal/core"
)

const (
	defaultCellSize = 14
	titleHeight     = 40
	legendRowHeight = 18
	margin          = 10
)

// SVGRenderer renders core.MapData as a standalone SVG document.
type SVGRenderer struct {
	CellSize int
	Palette  []string
}

// NewSVGRenderer returns a renderer with the default tile size and palette.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{CellSize: defaultCellSize, Palette: DefaultPalette}
}

// Extension implements core.MapRenderer.
func (r *SVGRenderer) Extension() string { return ".svg" }

// Render implements core.MapRenderer.
func (r *SVGRenderer) Render(ctx context.Context, w io.Writer, data core.MapData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cell := r.CellSize
	if cell <= 0 {
		cell = defaultCellSize
	}

	layout := NewLayout(mapCodes(data))
	scale := NewScale(data.Values, r.Palette)
	return document(data, layout, scale, cell).Render(ctx, w)
}

// mapCodes returns every code of the three series.
func mapCodes(data core.MapData) []string {
	codes := make([]string, 0, len(data.Values)+data.NotFound.Len()+data.NoData.Len())
	for c := range data.Values {
		codes = append(codes, c)
	}
	for c := range data.NotFound {
		codes = append(codes, c)
	}
	for c := range data.NoData {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// svgWriter keeps the first write error so components can write freely.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, args...)
}

type tile struct {
	code  string
	cell  Cell
	fill  string
	title string
}

// document is the whole SVG: title, the three tile series and the legend.
func document(data core.MapData, layout Layout, scale Scale, cell int) templ.Component {
	width := layout.Cols*cell + 2*margin
	mapHeight := layout.Rows * cell
	legendTop := titleHeight + mapHeight + margin
	legendRows := 3 + len(scale.Thresholds) + 1
	height := legendTop + legendRows*legendRowHeight + margin

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		sw := &svgWriter{w: w}
		sw.printf(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
		sw.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`+"\n",
			width, height, width, height)
		sw.printf(`<rect width="100%%" height="100%%" fill="#ffffff"/>` + "\n")
		sw.printf(`<text class="title" x="%d" y="%d" font-size="18" text-anchor="middle">%s</text>`+"\n",
			width/2, titleHeight-14, templ.EscapeString(data.Title))
		if sw.err != nil {
			return sw.err
		}

		parts := []templ.Component{
			seriesGroup("values", core.SeriesValues(data.Year), valueTiles(data, layout, scale), cell),
			seriesGroup("not-found", core.SeriesNotFound, stateTiles(data.NotFound, data.Names, layout, colorNotFound, "not found in GDP data"), cell),
			seriesGroup("no-data", core.SeriesNoData, stateTiles(data.NoData, data.Names, layout, colorNoData, "no data for "+data.Year), cell),
			legend(data.Year, scale, legendTop),
		}
		for _, c := range parts {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}

		sw.printf("</svg>\n")
		return sw.err
	})
}

// seriesGroup draws one labeled group of tiles.
func seriesGroup(class, label string, tiles []tile, cell int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		sw := &svgWriter{w: w}
		sw.printf(`<g class="series %s" aria-label="%s">`+"\n", class, templ.EscapeString(label))
		for _, t := range tiles {
			x := margin + t.cell.Col*cell
			y := titleHeight + t.cell.Row*cell
			sw.printf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" stroke="#ffffff" stroke-width="1" data-code="%s"><title>%s</title></rect>`+"\n",
				x, y, cell, cell, t.fill, templ.EscapeString(t.code), templ.EscapeString(t.title))
		}
		sw.printf("</g>\n")
		return sw.err
	})
}

// legend lists the three series and the value bins.
func legend(year string, scale Scale, top int) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		sw := &svgWriter{w: w}
		row := 0
		entry := func(fill, label string) {
			y := top + row*legendRowHeight
			sw.printf(`<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`, margin, y, fill)
			sw.printf(`<text x="%d" y="%d" font-size="12">%s</text>`+"\n", margin+18, y+10, templ.EscapeString(label))
			row++
		}

		sw.printf(`<g class="legend">` + "\n")
		entry(scale.Palette[len(scale.Palette)-1], core.SeriesValues(year))
		entry(colorNotFound, core.SeriesNotFound)
		entry(colorNoData, core.SeriesNoData)
		if len(scale.Thresholds) > 0 {
			for i := 0; i <= len(scale.Thresholds); i++ {
				lo, hi := scale.BinRange(i)
				entry(scale.Palette[i], FormatGDP(lo)+" to "+FormatGDP(hi))
			}
		}
		sw.printf("</g>\n")
		return sw.err
	})
}

func valueTiles(data core.MapData, layout Layout, scale Scale) []tile {
	codes := make([]string, 0, len(data.Values))
	for c := range data.Values {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	tiles := make([]tile, 0, len(codes))
	for _, c := range codes {
		v := data.Values[c]
		tiles = append(tiles, tile{
			code:  c,
			cell:  layout.Cells[c],
			fill:  scale.Color(v),
			title: fmt.Sprintf("%s (%s): %s", displayName(data.Names, c), c, FormatGDP(v)),
		})
	}
	return tiles
}

func stateTiles(set core.CodeSet, names core.CodeNameMap, layout Layout, fill, note string) []tile {
	codes := set.Sorted()
	tiles := make([]tile, 0, len(codes))
	for _, c := range codes {
		tiles = append(tiles, tile{
			code:  c,
			cell:  layout.Cells[c],
			fill:  fill,
			title: fmt.Sprintf("%s (%s): %s", displayName(names, c), c, note),
		})
	}
	return tiles
}

func displayName(names core.CodeNameMap, code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}
