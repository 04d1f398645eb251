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
	"github.com/ctessum/unit"
)

// Canonical unit labels. Every GriddedField carries one of these after
// loading, regardless of the units the file declared.
const (
	UnitMillimeter        = "mm"     // precipitation depth, cloud thickness
	UnitMillimeterPerHour = "mm h-1" // instantaneous precipitation rate
	UnitKilometersPerHour = "km h-1" // wind speed
	UnitHectopascal       = "hPa"    // sea-level pressure
	UnitKelvin            = "K"      // brightness temperature
)

// A Converter maps values from a declared unit to a canonical unit
// with v' = v*Factor + Offset.
type Converter struct {
	From, To       string
	Factor, Offset float64
}

// Apply converts a single value.
func (c Converter) Apply(v float64) float64 { return v*c.Factor + c.Offset }

// identity returns the conversion from a canonical unit to itself.
func identity(u string) Converter { return Converter{From: u, To: u, Factor: 1} }

// waterEquivalentFactor is the conversion factor from precipitation
// expressed as mass per area [kg m-2] to water-equivalent depth [mm],
// derived from the density of liquid water.
func waterEquivalentFactor() float64 {
	mass := unit.New(1, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -2})
	density := unit.New(1000, unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -3})
	depth := unit.Div(mass, density) // [m]
	if err := depth.Check(unit.Meter); err != nil {
		panic(err)
	}
	const mmPerM = 1000
	return depth.Value() * mmPerM
}

// conversions maps canonical unit -> declared unit -> converter.
// Declared units not listed here cannot be normalized and cause a
// UnitError.
var conversions = map[string]map[string]Converter{
	UnitMillimeter: {
		UnitMillimeter: identity(UnitMillimeter),
		"m":            {From: "m", To: UnitMillimeter, Factor: 1000},
		"kg m-2":       {From: "kg m-2", To: UnitMillimeter, Factor: waterEquivalentFactor()},
		"kg m^-2":      {From: "kg m^-2", To: UnitMillimeter, Factor: waterEquivalentFactor()},
	},
	UnitMillimeterPerHour: {
		UnitMillimeterPerHour: identity(UnitMillimeterPerHour),
		"m s-1":               {From: "m s-1", To: UnitMillimeterPerHour, Factor: 1000 * 3600},
		"mm s-1":              {From: "mm s-1", To: UnitMillimeterPerHour, Factor: 3600},
		"kg m-2 s-1":          {From: "kg m-2 s-1", To: UnitMillimeterPerHour, Factor: waterEquivalentFactor() * 3600},
	},
	UnitKilometersPerHour: {
		UnitKilometersPerHour: identity(UnitKilometersPerHour),
		"m s-1":               {From: "m s-1", To: UnitKilometersPerHour, Factor: 3.6},
	},
	UnitHectopascal: {
		UnitHectopascal: identity(UnitHectopascal),
		"Pa":            {From: "Pa", To: UnitHectopascal, Factor: 0.01},
	},
	UnitKelvin: {
		UnitKelvin: identity(UnitKelvin),
		"Kelvin":   {From: "Kelvin", To: UnitKelvin, Factor: 1},
		"C":        {From: "C", To: UnitKelvin, Factor: 1, Offset: 273.15},
		"degC":     {From: "degC", To: UnitKelvin, Factor: 1, Offset: 273.15},
	},
}

// conversionTo returns the converter from the declared unit of
// variable v to the given canonical unit.
func conversionTo(canonical, declared, v string) (Converter, error) {
	if c, ok := conversions[canonical][declared]; ok {
		return c, nil
	}
	return Converter{}, &UnitError{Variable: v, Units: declared, Want: canonical}
}
