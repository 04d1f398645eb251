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
	"io"
	"math"
	"path/filepath"
	"strings"
)

// DataLayout describes where the dataset files of each source kind
// live: a root directory, a subdirectory per kind, and a file name
// template per kind. Templates use [INDEX] as a wild card for the
// zero-padded time index of a file.
type DataLayout struct {
	Root string

	ModelDir, PrecipDir, SatelliteDir string

	// File name templates, e.g. "CORSE.1.SEG01.OUT.[INDEX].nc".
	ModelTemplate, PrecipTemplate, SatelliteTemplate string

	// Zero-padding width of [INDEX] in each template.
	ModelIndexWidth, PrecipIndexWidth, SatelliteIndexWidth int
}

// Path resolves the file path of the file with the given time index.
func (l DataLayout) Path(kind SourceKind, index int) (string, error) {
	var dir, template string
	var width int
	switch kind {
	case ModelOutput:
		dir, template, width = l.ModelDir, l.ModelTemplate, l.ModelIndexWidth
	case PrecipAnalysis:
		dir, template, width = l.PrecipDir, l.PrecipTemplate, l.PrecipIndexWidth
	case SatelliteBrightnessTemp:
		dir, template, width = l.SatelliteDir, l.SatelliteTemplate, l.SatelliteIndexWidth
	default:
		return "", fmt.Errorf("metplot: invalid source kind %v", kind)
	}
	if template == "" {
		return "", fmt.Errorf("metplot: no file template configured for %v", kind)
	}
	name := strings.Replace(template, "[INDEX]", fmt.Sprintf("%0*d", width, index), -1)
	return filepath.Join(l.Root, dir, name), nil
}

// A Series is an ordered list of dataset files of one source kind.
type Series struct {
	Kind  SourceKind
	Paths []string
}

// NewSeries resolves the file paths for the time indices
// start, start+step, ..., up to and including end.
func (l DataLayout) NewSeries(kind SourceKind, start, end, step int) (*Series, error) {
	if step <= 0 {
		return nil, fmt.Errorf("metplot: series step must be positive but is %d", step)
	}
	s := &Series{Kind: kind}
	for i := start; i <= end; i += step {
		p, err := l.Path(kind, i)
		if err != nil {
			return nil, err
		}
		s.Paths = append(s.Paths, p)
	}
	return s, nil
}

// NextField is a function that returns the field for the next time
// step in a series. After the last file it returns the io.EOF error.
type NextField func() (*GriddedField, error)

// Fields returns an iterator over the files of the series, loading
// each with the given Loader settings (the Loader's Kind is
// overridden by the series kind).
func (s *Series) Fields(l Loader) NextField {
	l.Kind = s.Kind
	var i int
	return func() (*GriddedField, error) {
		if i >= len(s.Paths) {
			return nil, io.EOF
		}
		f, err := l.Load(s.Paths[i])
		if err != nil {
			return nil, err
		}
		i++
		return f, nil
	}
}

// Limits scans every file in the series and returns the overall
// minimum and maximum of the field, for drawing a series of plots on
// a shared color scale.
func (s *Series) Limits(l Loader) (min, max float64, err error) {
	min, max = math.Inf(1), math.Inf(-1)
	next := s.Fields(l)
	for {
		f, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}
		fmin, fmax := f.Limits()
		if fmin < min {
			min = fmin
		}
		if fmax > max {
			max = fmax
		}
	}
	if math.IsInf(min, 1) {
		return 0, 0, fmt.Errorf("metplot: empty series for %v", s.Kind)
	}
	return min, max, nil
}
