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

// Package metplot loads gridded meteorological datasets from NetCDF
// files and normalizes them into a common in-memory representation
// for mapping and plotting. Supported sources are numerical model
// output, precipitation-analysis products, and satellite
// brightness-temperature retrievals.
package metplot

import (
	"fmt"
	"math"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// SourceKind selects the variable-name and unit conventions that apply
// when reading a file.
type SourceKind int

const (
	// ModelOutput is output from a Méso-NH mesoscale model run.
	ModelOutput SourceKind = iota
	// PrecipAnalysis is an ANTILOPE hourly accumulated-precipitation
	// analysis product.
	PrecipAnalysis
	// SatelliteBrightnessTemp is a merged geostationary satellite
	// brightness-temperature retrieval.
	SatelliteBrightnessTemp
)

func (k SourceKind) String() string {
	switch k {
	case ModelOutput:
		return "model-output"
	case PrecipAnalysis:
		return "precipitation-analysis"
	case SatelliteBrightnessTemp:
		return "satellite-brightness-temperature"
	default:
		return fmt.Sprintf("SourceKind(%d)", int(k))
	}
}

// ParseSourceKind converts a source kind name, as returned by
// SourceKind.String, back into a SourceKind.
func ParseSourceKind(s string) (SourceKind, error) {
	switch s {
	case "model-output", "model", "mesonh":
		return ModelOutput, nil
	case "precipitation-analysis", "precip", "antilope":
		return PrecipAnalysis, nil
	case "satellite-brightness-temperature", "satellite":
		return SatelliteBrightnessTemp, nil
	}
	return 0, fmt.Errorf("metplot: invalid source kind %q", s)
}

// GriddedField is one loaded dataset: a 2-dimensional array of values
// on a longitude/latitude grid, with the valid time and canonical
// units of the values. A GriddedField is constructed by the loading
// functions in this package and should not be modified afterwards.
type GriddedField struct {
	// Data holds the values, with shape [len(Lat), len(Lon)]
	// (row-major, latitude-major).
	Data *sparse.DenseArray

	// Lon and Lat are the grid coordinate axes [degrees].
	Lon, Lat []float64

	// Time is the valid time of the data.
	Time time.Time

	// Units is the canonical unit label of the values after
	// conversion.
	Units string

	// Variable is the name of the NetCDF variable the values were
	// read from.
	Variable string

	// Kind is the source the data came from.
	Kind SourceKind
}

// Bounds returns the geographic extent of the grid.
func (f *GriddedField) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for _, x := range f.Lon {
		b.Extend(geom.NewBoundsPoint(geom.Point{X: x, Y: f.Lat[0]}))
	}
	for _, y := range f.Lat {
		b.Extend(geom.NewBoundsPoint(geom.Point{X: f.Lon[0], Y: y}))
	}
	return b
}

// Subset returns a new GriddedField restricted to the grid cells whose
// centers lie within b. It is used to zoom a plot to a named domain.
// The receiver is not modified.
func (f *GriddedField) Subset(b *geom.Bounds) (*GriddedField, error) {
	i0, i1 := axisRange(f.Lat, b.Min.Y, b.Max.Y)
	j0, j1 := axisRange(f.Lon, b.Min.X, b.Max.X)
	if i1 <= i0 || j1 <= j0 {
		return nil, fmt.Errorf("metplot: empty subset of %s field %s for bounds %+v",
			f.Kind, f.Variable, *b)
	}
	o := &GriddedField{
		Data:     sparse.ZerosDense(i1-i0, j1-j0),
		Lon:      append([]float64{}, f.Lon[j0:j1]...),
		Lat:      append([]float64{}, f.Lat[i0:i1]...),
		Time:     f.Time,
		Units:    f.Units,
		Variable: f.Variable,
		Kind:     f.Kind,
	}
	nx := f.Data.Shape[1]
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			o.Data.Elements[(i-i0)*(j1-j0)+(j-j0)] = f.Data.Elements[i*nx+j]
		}
	}
	return o, nil
}

// axisRange returns the half-open index range of coordinate values
// within [lo, hi]. The axis may be ascending or descending.
func axisRange(axis []float64, lo, hi float64) (int, int) {
	first, last := -1, -1
	for i, v := range axis {
		if v >= lo && v <= hi {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return 0, 0
	}
	return first, last + 1
}

// Limits returns the minimum and maximum values of the field,
// ignoring NaN fill values.
func (f *GriddedField) Limits() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data.Elements {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
