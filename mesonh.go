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
	"fmt"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Méso-NH output conventions: 2-d longitude/latitude coordinate
// variables (optionally with a leading length-1 time dimension) and
// one record per file. Field variables of interest and their units:
//
//	INPRR  instantaneous precipitation rate [m s-1]
//	ACPRR  accumulated precipitation [m]
//	MSLP   mean sea-level pressure [hPa]
//	WIND10 10 m wind speed [m s-1]
//	UM10   10 m zonal wind [m s-1]
//	VM10   10 m meridional wind [m s-1]
//	THCW THRW THIC THSN THGR  cloud water/rain/ice/snow/graupel
//	       thickness [m]
type modelVar struct {
	canonical     string // unit the values are normalized to
	fallbackUnits string // declared unit assumed when the file has no units attribute
}

var modelVars = map[string]modelVar{
	"INPRR":  {UnitMillimeterPerHour, "m s-1"},
	"ACPRR":  {UnitMillimeter, "m"},
	"MSLP":   {UnitHectopascal, UnitHectopascal},
	"WIND10": {UnitKilometersPerHour, "m s-1"},
	"UM10":   {UnitKilometersPerHour, "m s-1"},
	"VM10":   {UnitKilometersPerHour, "m s-1"},
	"THCW":   {UnitMillimeter, "m"},
	"THRW":   {UnitMillimeter, "m"},
	"THIC":   {UnitMillimeter, "m"},
	"THSN":   {UnitMillimeter, "m"},
	"THGR":   {UnitMillimeter, "m"},
}

// cloudThicknessVars are the hydrometeor layers that sum to the total
// cloud thickness.
var cloudThicknessVars = []string{"THCW", "THRW", "THIC", "THSN", "THGR"}

const defaultModelVar = "ACPRR"

func loadMesoNH(path string, ff *cdf.File, l Loader) (*GriddedField, error) {
	name := l.Variable
	if name == "" {
		name = defaultModelVar
	}
	mv, ok := modelVars[name]
	if !ok {
		return nil, &FormatError{Path: path, Variable: name,
			Reason: fmt.Sprintf("no %v convention for variable", ModelOutput)}
	}
	lon, lat, err := modelCoords(path, ff)
	if err != nil {
		return nil, err
	}
	data, err := readRecord(path, ff, name, l.Record)
	if err != nil {
		return nil, err
	}
	t, err := optionalTime(path, ff, "time", l.Record, "")
	if err != nil {
		return nil, err
	}
	return newField(path, ModelOutput, name, data, lon, lat, t,
		declaredUnits(ff, name, mv.fallbackUnits), mv.canonical)
}

// LoadCloudThickness reads the hydrometeor thickness layers of a
// Méso-NH file at the given record and sums them into a total cloud
// thickness field [mm].
func LoadCloudThickness(path string, record int) (*GriddedField, error) {
	f, ff, err := openNCF(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var sum *GriddedField
	for _, name := range cloudThicknessVars {
		layer, err := loadMesoNH(path, ff, Loader{Kind: ModelOutput, Variable: name, Record: record})
		if err != nil {
			return nil, err
		}
		if sum == nil {
			sum = layer
			continue
		}
		if len(layer.Data.Elements) != len(sum.Data.Elements) {
			return nil, &FormatError{Path: path, Variable: name,
				Reason: "hydrometeor layers have inconsistent shapes"}
		}
		for i, v := range layer.Data.Elements {
			sum.Data.Elements[i] += v
		}
	}
	sum.Variable = "cloud thickness"
	return sum, nil
}

// modelCoords reads the 2-d longitude and latitude variables and
// reduces them to 1-d axes: longitude varies along rows and latitude
// along columns of the regular Méso-NH grid.
func modelCoords(path string, ff *cdf.File) (lon, lat []float64, err error) {
	lon2, err := modelCoordPlane(path, ff, "longitude")
	if err != nil {
		return nil, nil, err
	}
	lat2, err := modelCoordPlane(path, ff, "latitude")
	if err != nil {
		return nil, nil, err
	}
	if lon2.Shape[0] != lat2.Shape[0] || lon2.Shape[1] != lat2.Shape[1] {
		return nil, nil, &FormatError{Path: path, Variable: "longitude",
			Reason: "longitude and latitude have different shapes"}
	}
	ny, nx := lon2.Shape[0], lon2.Shape[1]
	lon = make([]float64, nx)
	copy(lon, lon2.Elements[:nx])
	lat = make([]float64, ny)
	for i := 0; i < ny; i++ {
		lat[i] = lat2.Elements[i*nx]
	}
	return lon, lat, nil
}

// modelCoordPlane reads a coordinate variable as a 2-d plane,
// stripping a leading length-1 time dimension if present.
func modelCoordPlane(path string, ff *cdf.File, name string) (*sparse.DenseArray, error) {
	if !hasVariable(ff, name) {
		return nil, &FormatError{Path: path, Variable: name, Reason: "variable not in file"}
	}
	dims := ff.Header.Lengths(name)
	var (
		data *sparse.DenseArray
		err  error
	)
	switch len(dims) {
	case 2:
		data, err = readFull(path, ff, name)
	case 3:
		data, err = readRecord(path, ff, name, 0)
	default:
		return nil, &FormatError{Path: path, Variable: name,
			Reason: fmt.Sprintf("expected 2 or 3 dimensions but found %d", len(dims))}
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}
