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

package metplotutil

import (
	"fmt"
	"io"
	"os"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/corsmet/metplot"
	"github.com/corsmet/metplot/plot"
)

// request gathers everything the subcommands share: the source kind,
// the resolved data layout, the zoom domain, and overlay geometries.
type request struct {
	kind    metplot.SourceKind
	layout  metplot.DataLayout
	zoom    *geom.Bounds
	overlay []geom.Geom
}

func newRequest(cfg *viper.Viper) (*request, error) {
	kind, err := metplot.ParseSourceKind(cfg.GetString("kind"))
	if err != nil {
		return nil, err
	}
	req := &request{
		kind:   kind,
		layout: Layout(cfg),
	}
	if req.zoom, err = zoomBounds(cfg.GetString("zoom"), req.layout); err != nil {
		return nil, err
	}
	if overlayPath := cfg.GetString("overlay"); overlayPath != "" {
		if req.overlay, err = plot.LoadOverlay(os.ExpandEnv(overlayPath)); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (r *request) loader() metplot.Loader {
	return metplot.Loader{
		Kind:     r.kind,
		Variable: Cfg.GetString("variable"),
		Record:   Cfg.GetInt("record"),
	}
}

// Layout builds the dataset directory layout from the configuration.
// Environment variables within path entries are expanded.
func Layout(cfg *viper.Viper) metplot.DataLayout {
	str := func(key string) string { return os.ExpandEnv(cast.ToString(cfg.Get(key))) }
	return metplot.DataLayout{
		Root:                str("Layout.Root"),
		ModelDir:            str("Layout.ModelDir"),
		ModelTemplate:       str("Layout.ModelTemplate"),
		ModelIndexWidth:     cast.ToInt(cfg.Get("Layout.ModelIndexWidth")),
		PrecipDir:           str("Layout.PrecipDir"),
		PrecipTemplate:      str("Layout.PrecipTemplate"),
		PrecipIndexWidth:    cast.ToInt(cfg.Get("Layout.PrecipIndexWidth")),
		SatelliteDir:        str("Layout.SatelliteDir"),
		SatelliteTemplate:   str("Layout.SatelliteTemplate"),
		SatelliteIndexWidth: cast.ToInt(cfg.Get("Layout.SatelliteIndexWidth")),
	}
}

// corsicaBounds is the fixed domain centered on Corsica.
var corsicaBounds = &geom.Bounds{
	Min: geom.Point{X: 2.5, Y: 40},
	Max: geom.Point{X: 10.5, Y: 45},
}

// zoomBounds resolves a named zoom domain. The "mesonh" domain is the
// extent of the first file of the configured model series.
func zoomBounds(name string, layout metplot.DataLayout) (*geom.Bounds, error) {
	switch name {
	case "", "all":
		return nil, nil
	case "corsica":
		return corsicaBounds.Copy(), nil
	case "mesonh":
		path, err := layout.Path(metplot.ModelOutput, 1)
		if err != nil {
			return nil, err
		}
		field, err := metplot.Load(path, metplot.ModelOutput)
		if err != nil {
			return nil, fmt.Errorf("metplot: resolving mesonh zoom domain: %v", err)
		}
		return field.Bounds(), nil
	}
	return nil, fmt.Errorf("metplot: %q isn't recognized as a zoom", name)
}

// subsetFields wraps a field iterator so that every frame is
// restricted to the given bounds.
func subsetFields(next metplot.NextField, b *geom.Bounds) metplot.NextField {
	return func() (*metplot.GriddedField, error) {
		f, err := next()
		if err != nil {
			return nil, err
		}
		return f.Subset(b)
	}
}

// legendLabel returns the configured legend label, or one derived
// from the loaded field.
func legendLabel(cfg *viper.Viper, f *metplot.GriddedField) string {
	if label := cfg.GetString("label"); label != "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", f.Variable, f.Units)
}

func writeLegend(path string, cmap *carto.ColorMap, label string) (err error) {
	var w io.WriteCloser
	if w, err = os.Create(path); err != nil {
		return err
	}
	defer w.Close()
	const width, height = 600, 80
	return plot.Legend(cmap, label, width, height, w)
}
