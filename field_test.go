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

package metplot

import (
	"math"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// testField returns a 4×5 field with element values i*5+j on a
// 0.1-degree grid starting at (2.5 E, 40 N).
func testField() *GriddedField {
	f := &GriddedField{
		Data:     sparse.ZerosDense(4, 5),
		Lon:      ramp(5, 2.5, 0.1),
		Lat:      ramp(4, 40, 0.1),
		Units:    UnitMillimeter,
		Variable: "prec",
		Kind:     PrecipAnalysis,
	}
	for i := range f.Data.Elements {
		f.Data.Elements[i] = float64(i)
	}
	return f
}

func TestParseSourceKindRoundTrip(t *testing.T) {
	for _, k := range []SourceKind{ModelOutput, PrecipAnalysis, SatelliteBrightnessTemp} {
		got, err := ParseSourceKind(k.String())
		if err != nil {
			t.Fatalf("%v: %v", k, err)
		}
		if got != k {
			t.Errorf("%v: round trip gives %v", k, got)
		}
	}
	if _, err := ParseSourceKind("radar"); err == nil {
		t.Error("expected an error for an unknown kind name")
	}
}

func TestBounds(t *testing.T) {
	b := testField().Bounds()
	if !approx(b.Min.X, 2.5) || !approx(b.Max.X, 2.9) ||
		!approx(b.Min.Y, 40) || !approx(b.Max.Y, 40.3) {
		t.Errorf("bounds: got %+v", *b)
	}
}

func TestSubset(t *testing.T) {
	f := testField()
	sub, err := f.Subset(&geom.Bounds{
		Min: geom.Point{X: 2.6, Y: 40.1},
		Max: geom.Point{X: 2.8, Y: 40.2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if sub.Data.Shape[0] != 2 || sub.Data.Shape[1] != 3 {
		t.Fatalf("shape: want [2 3], got %v", sub.Data.Shape)
	}
	if !approx(sub.Lon[0], 2.6) || !approx(sub.Lat[0], 40.1) {
		t.Errorf("axes: lon[0]=%g lat[0]=%g", sub.Lon[0], sub.Lat[0])
	}
	// Top-left of the subset is row 1, column 1 of the original.
	if got := sub.Data.Elements[0]; !approx(got, 1*5+1) {
		t.Errorf("element 0: want 6, got %g", got)
	}
	if sub.Units != f.Units || sub.Variable != f.Variable || sub.Kind != f.Kind {
		t.Error("subset must keep the field metadata")
	}
	// The original must be untouched.
	if f.Data.Shape[0] != 4 || f.Data.Shape[1] != 5 {
		t.Errorf("original shape changed to %v", f.Data.Shape)
	}
}

func TestSubsetEmpty(t *testing.T) {
	f := testField()
	_, err := f.Subset(&geom.Bounds{
		Min: geom.Point{X: 100, Y: 0},
		Max: geom.Point{X: 110, Y: 10},
	})
	if err == nil {
		t.Error("expected an error for bounds outside the grid")
	}
}

func TestAxisRangeDescending(t *testing.T) {
	axis := ramp(5, 45, -0.5) // 45, 44.5, 44, 43.5, 43
	i0, i1 := axisRange(axis, 43.4, 44.6)
	if i0 != 1 || i1 != 4 {
		t.Errorf("descending axis: got [%d, %d), want [1, 4)", i0, i1)
	}
}

func TestFieldLimits(t *testing.T) {
	f := testField()
	f.Data.Elements[7] = math.NaN()
	f.Data.Elements[3] = -2
	min, max := f.Limits()
	if !approx(min, -2) || !approx(max, 19) {
		t.Errorf("limits: want [-2, 19], got [%g, %g]", min, max)
	}
}
