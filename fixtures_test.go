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
	"os"
	"testing"

	"github.com/ctessum/cdf"
)

// fixtureVar is one variable of a synthetic NetCDF test file.
type fixtureVar struct {
	name  string
	dims  []string
	f64   bool
	data  []float64
	attrs map[string]string
}

// writeFixture writes a synthetic NetCDF file for testing.
func writeFixture(t *testing.T, path string, dims []string, lengths []int, vars []fixtureVar) {
	t.Helper()
	h := cdf.NewHeader(dims, lengths)
	for _, v := range vars {
		if v.f64 {
			h.AddVariable(v.name, v.dims, []float64{0})
		} else {
			h.AddVariable(v.name, v.dims, []float32{0})
		}
		for name, val := range v.attrs {
			h.AddAttribute(v.name, name, val)
		}
	}
	h.Define()

	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	f, err := cdf.Create(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range vars {
		end := f.Header.Lengths(v.name)
		start := make([]int, len(end))
		wtr := f.Writer(v.name, start, end)
		if v.f64 {
			if _, err := wtr.Write(v.data); err != nil {
				t.Fatalf("writing %s: %v", v.name, err)
			}
			continue
		}
		data32 := make([]float32, len(v.data))
		for i, e := range v.data {
			data32[i] = float32(e)
		}
		if _, err := wtr.Write(data32); err != nil {
			t.Fatalf("writing %s: %v", v.name, err)
		}
	}
	if err := cdf.UpdateNumRecs(w); err != nil {
		t.Fatal(err)
	}
}

// writeJunk writes a file that is not NetCDF.
func writeJunk(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("this is not a NetCDF file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ramp returns n values v[i] = offset + i*step.
func ramp(n int, offset, step float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = offset + float64(i)*step
	}
	return v
}

// lonPlane returns a ny×nx plane whose values increase eastward.
func lonPlane(ny, nx int, lon0, dx float64) []float64 {
	v := make([]float64, ny*nx)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			v[i*nx+j] = lon0 + float64(j)*dx
		}
	}
	return v
}

// latPlane returns a ny×nx plane whose values increase northward.
func latPlane(ny, nx int, lat0, dy float64) []float64 {
	v := make([]float64, ny*nx)
	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			v[i*nx+j] = lat0 + float64(i)*dy
		}
	}
	return v
}

// writeModelFile writes a synthetic Méso-NH output file with a single
// record and a ny×nx grid.
func writeModelFile(t *testing.T, path string, ny, nx int) {
	t.Helper()
	cell := ny * nx
	vars := []fixtureVar{
		{
			name: "time", dims: []string{"time"}, f64: true,
			data:  []float64{3600},
			attrs: map[string]string{"units": "seconds since 2022-08-18 00:00:00"},
		},
		{name: "longitude", dims: []string{"time", "y", "x"}, data: lonPlane(ny, nx, 8.0, 0.01)},
		{name: "latitude", dims: []string{"time", "y", "x"}, data: latPlane(ny, nx, 41.5, 0.01)},
		{
			name: "ACPRR", dims: []string{"time", "y", "x"},
			data:  ramp(cell, 0, 0.001),
			attrs: map[string]string{"units": "m"},
		},
		{
			name: "INPRR", dims: []string{"time", "y", "x"},
			data:  ramp(cell, 0, 1e-6),
			attrs: map[string]string{"units": "m s-1"},
		},
		{
			name: "MSLP", dims: []string{"time", "y", "x"},
			data:  ramp(cell, 1000, 0.01),
			attrs: map[string]string{"units": "hPa"},
		},
		{
			name: "WIND10", dims: []string{"time", "y", "x"},
			data:  ramp(cell, 0, 0.1),
			attrs: map[string]string{"units": "m s-1"},
		},
	}
	for _, name := range cloudThicknessVars {
		vars = append(vars, fixtureVar{
			name: name, dims: []string{"time", "y", "x"},
			data:  ramp(cell, 0, 0.0001),
			attrs: map[string]string{"units": "m"},
		})
	}
	writeFixture(t, path, []string{"time", "y", "x"}, []int{1, ny, nx}, vars)
}

// writePrecipFile writes a synthetic ANTILOPE analysis file with nt
// records on a ny×nx grid. units is the declared unit of "prec" and
// offset shifts the values, so that series tests can distinguish
// files.
func writePrecipFile(t *testing.T, path string, nt, ny, nx int, units string, offset float64) {
	t.Helper()
	data := make([]float64, 0, nt*ny*nx)
	for rec := 0; rec < nt; rec++ {
		data = append(data, ramp(ny*nx, offset+float64(rec)*100, 1)...)
	}
	writeFixture(t, path, []string{"time", "lat", "lon"}, []int{nt, ny, nx}, []fixtureVar{
		{
			name: "time", dims: []string{"time"}, f64: true,
			data:  ramp(nt, 0, 1),
			attrs: map[string]string{"units": "hours since 2022-08-01 00:00:00"},
		},
		{name: "lat", dims: []string{"lat"}, data: ramp(ny, 40, 0.1)},
		{name: "lon", dims: []string{"lon"}, data: ramp(nx, 2.5, 0.1)},
		{
			name: "prec", dims: []string{"time", "lat", "lon"},
			data:  data,
			attrs: map[string]string{"units": units},
		},
	})
}

// writeSatelliteFile writes a synthetic brightness-temperature file.
// The time variable carries no units attribute, as in the real merged
// satellite product.
func writeSatelliteFile(t *testing.T, path string, ny, nx int) {
	t.Helper()
	writeFixture(t, path, []string{"time", "lat", "lon"}, []int{1, ny, nx}, []fixtureVar{
		{name: "time", dims: []string{"time"}, f64: true, data: []float64{19222.5}},
		// Latitude axis deliberately descending, as satellite grids
		// are stored north to south.
		{name: "lat", dims: []string{"lat"}, data: ramp(ny, 45, -0.1)},
		{name: "lon", dims: []string{"lon"}, data: ramp(nx, 2.5, 0.1)},
		{
			name: "Tb", dims: []string{"time", "lat", "lon"},
			data:  ramp(ny*nx, 210, 0.5),
			attrs: map[string]string{"units": "K"},
		},
	})
}
