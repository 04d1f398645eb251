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
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// A Loader configures how one dataset file is read. The zero value of
// everything except Kind selects the source kind's primary variable at
// the first record.
type Loader struct {
	// Kind selects the variable-name and unit conventions.
	Kind SourceKind

	// Variable overrides the kind's primary variable.
	Variable string

	// Record is the index along the file's record (time) axis.
	Record int
}

// Load reads the file at path according to the conventions of kind and
// returns the normalized result. It is shorthand for
// Loader{Kind: kind}.Load(path).
func Load(path string, kind SourceKind) (*GriddedField, error) {
	return Loader{Kind: kind}.Load(path)
}

// Load reads one dataset file. The file handle is released before
// returning, on error paths included.
func (l Loader) Load(path string) (*GriddedField, error) {
	f, ff, err := openNCF(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch l.Kind {
	case ModelOutput:
		return loadMesoNH(path, ff, l)
	case PrecipAnalysis:
		return loadAntilope(path, ff, l)
	case SatelliteBrightnessTemp:
		return loadSatellite(path, ff, l)
	}
	return nil, fmt.Errorf("metplot: invalid source kind %v", l.Kind)
}

// declaredUnits returns the units a variable declares in the file, or
// the kind's conventional fallback when the attribute is absent.
func declaredUnits(ff *cdf.File, name, fallback string) string {
	if u, ok := attrString(ff, name, "units"); ok {
		return u
	}
	return fallback
}

// newField normalizes freshly read data into a GriddedField:
// values are converted from their declared units to the canonical
// units, and the array shape is checked against the coordinate axes.
func newField(path string, kind SourceKind, name string, data *sparse.DenseArray,
	lon, lat []float64, t time.Time, declared, canonical string) (*GriddedField, error) {
	conv, err := conversionTo(canonical, declared, name)
	if err != nil {
		return nil, err
	}
	if conv.Factor != 1 || conv.Offset != 0 {
		for i, v := range data.Elements {
			data.Elements[i] = conv.Apply(v)
		}
	}
	if len(data.Shape) != 2 {
		return nil, &FormatError{Path: path, Variable: name,
			Reason: fmt.Sprintf("expected a 2-d field but found %d dimensions", len(data.Shape))}
	}
	if data.Shape[0] != len(lat) || data.Shape[1] != len(lon) {
		return nil, &FormatError{Path: path, Variable: name,
			Reason: fmt.Sprintf("data shape [%d %d] does not match coordinates [%d %d]",
				data.Shape[0], data.Shape[1], len(lat), len(lon))}
	}
	return &GriddedField{
		Data:     data,
		Lon:      lon,
		Lat:      lat,
		Time:     t,
		Units:    canonical,
		Variable: name,
		Kind:     kind,
	}, nil
}

// optionalTime resolves the file's time variable, returning the zero
// time when the variable is absent. A present but malformed time
// variable is still an error.
func optionalTime(path string, ff *cdf.File, timeVar string, record int, fallbackUnits string) (time.Time, error) {
	if !hasVariable(ff, timeVar) {
		return time.Time{}, nil
	}
	return readTime(path, ff, timeVar, record, fallbackUnits)
}
