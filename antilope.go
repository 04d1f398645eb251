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
)

// ANTILOPE analysis conventions: 1-d lon/lat coordinate variables and
// an hourly accumulated precipitation variable "prec" [mm] with one
// record per day slot. Loader.Record selects the slot.
const (
	antilopeVar           = "prec"
	antilopeFallbackUnits = UnitMillimeter
)

func loadAntilope(path string, ff *cdf.File, l Loader) (*GriddedField, error) {
	name := l.Variable
	if name == "" {
		name = antilopeVar
	}
	lon, err := coordAxis(path, ff, "lon")
	if err != nil {
		return nil, err
	}
	lat, err := coordAxis(path, ff, "lat")
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
	return newField(path, PrecipAnalysis, name, data, lon, lat, t,
		declaredUnits(ff, name, antilopeFallbackUnits), UnitMillimeter)
}

// coordAxis reads a 1-d coordinate variable.
func coordAxis(path string, ff *cdf.File, name string) ([]float64, error) {
	if !hasVariable(ff, name) {
		return nil, &FormatError{Path: path, Variable: name, Reason: "variable not in file"}
	}
	dims := ff.Header.Lengths(name)
	if len(dims) != 1 {
		return nil, &FormatError{Path: path, Variable: name,
			Reason: fmt.Sprintf("expected 1 dimension but found %d", len(dims))}
	}
	data, err := readFull(path, ff, name)
	if err != nil {
		return nil, err
	}
	return data.Elements, nil
}
