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
	"image"
	"image/png"
	"io"

	"github.com/ctessum/geom/carto"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Legend draws the color bar of cmap with the given label and encodes
// it as PNG.
func Legend(cmap *carto.ColorMap, label string, width, height int, w io.Writer) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := vgimg.NewWith(vgimg.UseImage(img))
	dc := draw.New(c)
	if err := cmap.Legend(&dc, label); err != nil {
		return err
	}
	return png.Encode(w, img)
}
