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
	"github.com/ctessum/cdf"
)

// Merged satellite retrieval conventions: 1-d lon/lat coordinate
// variables, a brightness temperature variable "Tb" [K], and a time
// variable counting days since the Unix epoch when it carries no units
// attribute of its own.
const (
	satelliteVar           = "Tb"
	satelliteFallbackUnits = UnitKelvin
	satelliteTimeUnits     = "days since 1970-01-01"
)

func loadSatellite(path string, ff *cdf.File, l Loader) (*GriddedField, error) {
	name := l.Variable
	if name == "" {
		name = satelliteVar
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
	t, err := optionalTime(path, ff, "time", l.Record, satelliteTimeUnits)
	if err != nil {
		return nil, err
	}
	return newField(path, SatelliteBrightnessTemp, name, data, lon, lat, t,
		declaredUnits(ff, name, satelliteFallbackUnits), UnitKelvin)
}
