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
	"fmt"
	"os"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"
)

// LoadOverlay reads map overlay geometries (coastlines, country
// borders) from a GeoJSON file.
func LoadOverlay(path string) ([]geom.Geom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("plot: opening overlay file: %v", err)
	}
	defer f.Close()
	gj, err := carto.LoadGeoJSON(f)
	if err != nil {
		return nil, fmt.Errorf("plot: reading overlay file %s: %v", path, err)
	}
	g, err := gj.GetGeometry()
	if err != nil {
		return nil, fmt.Errorf("plot: decoding overlay geometry from %s: %v", path, err)
	}
	return g, nil
}
