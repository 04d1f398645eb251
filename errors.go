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

import "fmt"

// FileNotFoundError indicates that the requested dataset file does not
// exist or could not be opened.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("metplot: opening dataset file %s: %v", e.Path, e.Err)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// FormatError indicates that a file could be opened but does not
// follow the conventions of the source kind it was loaded as: a
// variable or coordinate is missing, has the wrong shape or type, or a
// requested record is out of range.
type FormatError struct {
	Path     string
	Variable string
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Variable == "" {
		return fmt.Sprintf("metplot: reading %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("metplot: reading variable %s from %s: %s", e.Variable, e.Path, e.Reason)
}

// UnitError indicates that the units a variable is declared in cannot
// be mapped to the canonical units for its source kind.
type UnitError struct {
	Variable string
	Units    string
	Want     string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("metplot: variable %s: cannot convert units %q to %q", e.Variable, e.Units, e.Want)
}
