/*
Copyright © 2023 the metplot authors.
This file is part of metplot.

metplot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

metplot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with metplot.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package plot renders GriddedFields as raster maps, legends, and GIF
// animations.
package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/corsmet/metplot"
)

// ColorMap builds a linear color map covering [min, max].
func ColorMap(min, max float64) *carto.ColorMap {
	cmap := carto.NewColorMap(carto.Linear)
	levels := make([]float64, 11)
	floats.Span(levels, min, max)
	cmap.AddArray(levels)
	cmap.Set()
	return cmap
}

// Draw renders a field onto a raster map, one image column per grid
// column. Overlay geometries (coastlines, borders) are stroked on top.
func Draw(f *metplot.GriddedField, cmap *carto.ColorMap, overlay []geom.Geom, ls draw.LineStyle) (*carto.RasterMap, error) {
	ny, nx := f.Data.Shape[0], f.Data.Shape[1]
	if len(f.Lon) < 2 || len(f.Lat) < 2 {
		return nil, fmt.Errorf("plot: field %s grid is too small to draw (%d×%d)",
			f.Variable, ny, nx)
	}
	dx := math.Abs(f.Lon[len(f.Lon)-1]-f.Lon[0]) / float64(nx-1)
	dy := math.Abs(f.Lat[len(f.Lat)-1]-f.Lat[0]) / float64(ny-1)
	W := math.Min(f.Lon[0], f.Lon[len(f.Lon)-1]) - dx/2
	S := math.Min(f.Lat[0], f.Lat[len(f.Lat)-1]) - dy/2

	// NaN fill values take the low end of the color scale.
	data := make([]float64, len(f.Data.Elements))
	min, _ := f.Limits()
	for i, v := range f.Data.Elements {
		if math.IsNaN(v) {
			data[i] = min
		} else {
			data[i] = v
		}
	}

	// Row 0 of the data is at index latitude 0; the image origin is
	// the north-west corner, so ascending latitude axes draw flipped.
	flipVertical := f.Lat[len(f.Lat)-1] > f.Lat[0]
	m := carto.NewCanvasFromRaster(S, W, dy, dx, ny, nx, data, cmap, flipVertical, false)
	for _, g := range overlay {
		if err := m.DrawVector(g, color.NRGBA{}, ls, draw.GlyphStyle{}); err != nil {
			return nil, fmt.Errorf("plot: drawing overlay on field %s: %v", f.Variable, err)
		}
	}
	return m, nil
}

// DefaultLineStyle is the stroke used for overlay geometries.
func DefaultLineStyle() draw.LineStyle {
	return draw.LineStyle{
		Color: color.NRGBA{A: 255},
		Width: vg.Points(0.75),
	}
}

// WritePNG encodes a rendered map as PNG.
func WritePNG(m *carto.RasterMap, w io.Writer) error {
	return m.WriteTo(w)
}

// SavePNG renders a field and writes it to a PNG file.
func SavePNG(path string, f *metplot.GriddedField, cmap *carto.ColorMap, overlay []geom.Geom) error {
	m, err := Draw(f, cmap, overlay, DefaultLineStyle())
	if err != nil {
		return err
	}
	w, err := os.Create(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return WritePNG(m, w)
}
