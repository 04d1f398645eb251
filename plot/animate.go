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
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"

	"github.com/corsmet/metplot"
)

// AnimateGIF renders every field returned by next as one animation
// frame and encodes the result as an animated GIF. All frames share
// the color scale of cmap, so cmap should be built from the limits of
// the whole series. delay is the inter-frame delay in hundredths of a
// second.
func AnimateGIF(w io.Writer, next metplot.NextField, cmap *carto.ColorMap, overlay []geom.Geom, delay int) error {
	anim := &gif.GIF{}
	for {
		f, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		m, err := Draw(f, cmap, overlay, DefaultLineStyle())
		if err != nil {
			return err
		}
		frame := image.NewPaletted(m.I.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(frame, m.I.Bounds(), m.I, image.Point{})
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	if len(anim.Image) == 0 {
		return fmt.Errorf("plot: animation has no frames")
	}
	return gif.EncodeAll(w, anim)
}
