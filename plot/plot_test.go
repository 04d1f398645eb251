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

package plot

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"

	"github.com/corsmet/metplot"
)

// testField returns a ny×nx precipitation field on an equally spaced
// grid. Values run 0..ny*nx-1 south to north unless descending is set,
// in which case the latitude axis runs north to south.
func testField(ny, nx int, descending bool) *metplot.GriddedField {
	f := &metplot.GriddedField{
		Data:     sparse.ZerosDense(ny, nx),
		Lon:      make([]float64, nx),
		Lat:      make([]float64, ny),
		Units:    metplot.UnitMillimeter,
		Variable: "prec",
		Kind:     metplot.PrecipAnalysis,
	}
	// Exactly representable 0.25-degree spacing keeps the raster size
	// free of rounding.
	for j := range f.Lon {
		f.Lon[j] = 2.5 + float64(j)*0.25
	}
	for i := range f.Lat {
		if descending {
			f.Lat[i] = 45 - float64(i)*0.25
		} else {
			f.Lat[i] = 40 + float64(i)*0.25
		}
	}
	for i := range f.Data.Elements {
		f.Data.Elements[i] = float64(i)
	}
	return f
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestDrawOrientation(t *testing.T) {
	f := testField(4, 4, false)
	min, max := f.Limits()
	cmap := ColorMap(min, max)
	m, err := Draw(f, cmap, nil, DefaultLineStyle())
	if err != nil {
		t.Fatal(err)
	}
	b := m.I.Bounds()
	if b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("image size: want 4×4, got %d×%d", b.Dx(), b.Dy())
	}
	// The latitude axis ascends, so data row 0 (the southernmost) must
	// land on the bottom image row and the last row on top.
	if !sameColor(m.I.At(0, 3), cmap.GetColor(0)) {
		t.Error("southernmost row is not at the bottom of the image")
	}
	if !sameColor(m.I.At(3, 0), cmap.GetColor(15)) {
		t.Error("northernmost row is not at the top of the image")
	}
}

func TestDrawDescendingLatitude(t *testing.T) {
	f := testField(4, 4, true)
	min, max := f.Limits()
	cmap := ColorMap(min, max)
	m, err := Draw(f, cmap, nil, DefaultLineStyle())
	if err != nil {
		t.Fatal(err)
	}
	// Row 0 is already the northernmost, so no flip: it stays on top.
	if !sameColor(m.I.At(0, 0), cmap.GetColor(0)) {
		t.Error("first data row is not at the top of the image")
	}
}

func TestDrawNaN(t *testing.T) {
	f := testField(4, 4, false)
	f.Data.Elements[5] = math.NaN()
	min, max := f.Limits()
	cmap := ColorMap(min, max)
	m, err := Draw(f, cmap, nil, DefaultLineStyle())
	if err != nil {
		t.Fatal(err)
	}
	// Element 5 is row 1, column 1, flipped to image row 2. Fill values
	// draw in the low-end color.
	if !sameColor(m.I.At(1, 2), cmap.GetColor(min)) {
		t.Error("NaN cell does not use the low end of the color scale")
	}
}

func TestDrawOverlay(t *testing.T) {
	f := testField(8, 8, false)
	min, max := f.Limits()
	cmap := ColorMap(min, max)
	line := geom.LineString{
		geom.Point{X: 2.5, Y: 40},
		geom.Point{X: 4, Y: 41.5},
	}
	if _, err := Draw(f, cmap, []geom.Geom{line}, DefaultLineStyle()); err != nil {
		t.Fatal(err)
	}
}

func TestDrawTooSmall(t *testing.T) {
	f := testField(1, 1, false)
	if _, err := Draw(f, ColorMap(0, 1), nil, DefaultLineStyle()); err == nil {
		t.Error("expected an error for a 1×1 grid")
	}
}

func TestSavePNG(t *testing.T) {
	f := testField(6, 9, false)
	min, max := f.Limits()
	path := filepath.Join(t.TempDir(), "field.png")
	if err := SavePNG(path, f, ColorMap(min, max), nil); err != nil {
		t.Fatal(err)
	}
	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	img, err := png.Decode(r)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 9 {
		t.Errorf("image width: want 9, got %d", img.Bounds().Dx())
	}
}

func TestLegend(t *testing.T) {
	var buf bytes.Buffer
	if err := Legend(ColorMap(0, 25), "Rain rate (mm h-1)", 600, 80, &buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 80 {
		t.Errorf("legend size: want 600×80, got %d×%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestAnimateGIF(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping animation rendering in short mode")
	}
	fields := []*metplot.GriddedField{
		testField(4, 4, false),
		testField(4, 4, false),
		testField(4, 4, false),
	}
	var i int
	next := metplot.NextField(func() (*metplot.GriddedField, error) {
		if i >= len(fields) {
			return nil, io.EOF
		}
		f := fields[i]
		i++
		return f, nil
	})
	var buf bytes.Buffer
	if err := AnimateGIF(&buf, next, ColorMap(0, 15), nil, 20); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 3 {
		t.Fatalf("frames: want 3, got %d", len(anim.Image))
	}
	for i, d := range anim.Delay {
		if d != 20 {
			t.Errorf("frame %d delay: want 20, got %d", i, d)
		}
	}
}

func TestAnimateGIFEmpty(t *testing.T) {
	next := metplot.NextField(func() (*metplot.GriddedField, error) {
		return nil, io.EOF
	})
	var buf bytes.Buffer
	if err := AnimateGIF(&buf, next, ColorMap(0, 1), nil, 10); err == nil {
		t.Error("expected an error for a series with no frames")
	}
}
