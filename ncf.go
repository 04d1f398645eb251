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
	"math"
	"os"
	"strings"
	"time"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// openNCF opens a NetCDF file for reading. The caller must close the
// returned *os.File.
func openNCF(path string) (*os.File, *cdf.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &FileNotFoundError{Path: path, Err: err}
	}
	ff, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, nil, &FormatError{Path: path, Reason: fmt.Sprintf("not a NetCDF file: %v", err)}
	}
	return f, ff, nil
}

// hasVariable reports whether the file contains the named variable.
func hasVariable(ff *cdf.File, name string) bool {
	for _, v := range ff.Header.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

// readRecord reads one record of variable name out of ff. The first
// dimension of the variable is taken to be the record (time) axis;
// the returned array holds the remaining dimensions.
func readRecord(path string, ff *cdf.File, name string, record int) (*sparse.DenseArray, error) {
	if !hasVariable(ff, name) {
		return nil, &FormatError{Path: path, Variable: name, Reason: "variable not in file"}
	}
	dims := ff.Header.Lengths(name)
	if len(dims) < 2 {
		return nil, &FormatError{Path: path, Variable: name,
			Reason: fmt.Sprintf("expected at least 2 dimensions but found %d", len(dims))}
	}
	if record < 0 || (dims[0] > 0 && record >= dims[0]) {
		return nil, &FormatError{Path: path, Variable: name,
			Reason: fmt.Sprintf("record %d out of range [0,%d)", record, dims[0])}
	}
	shape := dims[1:]
	n := 1
	for _, d := range shape {
		n *= d
	}
	start, end := make([]int, len(dims)), make([]int, len(dims))
	start[0], end[0] = record, record+1
	r := ff.Reader(name, start, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, &FormatError{Path: path, Variable: name, Reason: err.Error()}
	}
	data := sparse.ZerosDense(shape...)
	if err := fillElements(data, buf); err != nil {
		return nil, &FormatError{Path: path, Variable: name, Reason: err.Error()}
	}
	applyFillValue(ff, name, data)
	return data, nil
}

// readFull reads all of variable name out of ff.
func readFull(path string, ff *cdf.File, name string) (*sparse.DenseArray, error) {
	if !hasVariable(ff, name) {
		return nil, &FormatError{Path: path, Variable: name, Reason: "variable not in file"}
	}
	dims := ff.Header.Lengths(name)
	r := ff.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, &FormatError{Path: path, Variable: name, Reason: err.Error()}
	}
	data := sparse.ZerosDense(dims...)
	if err := fillElements(data, buf); err != nil {
		return nil, &FormatError{Path: path, Variable: name, Reason: err.Error()}
	}
	applyFillValue(ff, name, data)
	return data, nil
}

// fillElements copies a NetCDF read buffer into a dense array,
// converting to float64.
func fillElements(data *sparse.DenseArray, buf interface{}) error {
	switch b := buf.(type) {
	case []float64:
		copy(data.Elements, b)
	case []float32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	case []int32:
		for i, v := range b {
			data.Elements[i] = float64(v)
		}
	default:
		return fmt.Errorf("unsupported data type %T", buf)
	}
	return nil
}

// applyFillValue replaces _FillValue sentinels with NaN.
func applyFillValue(ff *cdf.File, name string, data *sparse.DenseArray) {
	attr := ff.Header.GetAttribute(name, "_FillValue")
	if attr == nil {
		return
	}
	var noData float64
	switch a := attr.(type) {
	case []float32:
		noData = float64(a[0])
	case []float64:
		noData = a[0]
	default:
		return
	}
	for i, v := range data.Elements {
		if v == noData {
			data.Elements[i] = math.NaN()
		}
	}
}

// attrString returns a string attribute of a variable ("" selects a
// global attribute).
func attrString(ff *cdf.File, v, name string) (string, bool) {
	attr := ff.Header.GetAttribute(v, name)
	if attr == nil {
		return "", false
	}
	switch a := attr.(type) {
	case string:
		return a, true
	case []byte:
		return string(a), true
	}
	return "", false
}

// timeLayouts are the reference date formats accepted in "units since"
// attributes.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseTimeReference parses a CF-style time units attribute of the
// form "seconds|hours|days since <reference>", returning the reference
// time and the duration of one unit.
func parseTimeReference(units string) (time.Time, time.Duration, error) {
	fields := strings.SplitN(strings.TrimSpace(units), " since ", 2)
	if len(fields) != 2 {
		return time.Time{}, 0, fmt.Errorf("cannot parse time units %q", units)
	}
	var step time.Duration
	switch strings.TrimSpace(fields[0]) {
	case "seconds", "second", "s":
		step = time.Second
	case "minutes", "minute", "min":
		step = time.Minute
	case "hours", "hour", "h":
		step = time.Hour
	case "days", "day", "d":
		step = 24 * time.Hour
	default:
		return time.Time{}, 0, fmt.Errorf("cannot parse time units %q", units)
	}
	ref := strings.TrimSpace(fields[1])
	ref = strings.TrimSuffix(ref, " UTC")
	ref = strings.TrimSuffix(ref, "Z")
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, ref); err == nil {
			return t.UTC(), step, nil
		}
	}
	return time.Time{}, 0, fmt.Errorf("cannot parse time reference %q", ref)
}

// readTime reads element record of the time variable and resolves it
// against the variable's "units" attribute (or fallbackUnits when the
// attribute is absent).
func readTime(path string, ff *cdf.File, timeVar string, record int, fallbackUnits string) (time.Time, error) {
	if !hasVariable(ff, timeVar) {
		return time.Time{}, &FormatError{Path: path, Variable: timeVar, Reason: "variable not in file"}
	}
	vals, err := readFull(path, ff, timeVar)
	if err != nil {
		return time.Time{}, err
	}
	idx := record
	if len(vals.Elements) == 1 {
		idx = 0
	}
	if idx < 0 || idx >= len(vals.Elements) {
		return time.Time{}, &FormatError{Path: path, Variable: timeVar,
			Reason: fmt.Sprintf("record %d out of range [0,%d)", record, len(vals.Elements))}
	}
	units, ok := attrString(ff, timeVar, "units")
	if !ok {
		units = fallbackUnits
	}
	base, step, err := parseTimeReference(units)
	if err != nil {
		return time.Time{}, &FormatError{Path: path, Variable: timeVar, Reason: err.Error()}
	}
	return base.Add(time.Duration(vals.Elements[idx] * float64(step))), nil
}
