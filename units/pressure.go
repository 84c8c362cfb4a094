// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"strings"
)

// Pressure is stored in hectopascal, the unit the BMP280 reports.
type Pressure struct {
	hectopascal float64
}

func NewPressureHectopascal(value float64) Pressure {
	return Pressure{value}
}

func NewPressureKilopascal(value float64) Pressure {
	return Pressure{value * 10.0}
}

func NewPressurePascal(value float64) Pressure {
	return Pressure{value / 100.0}
}

func NewPressureInchMercury(value float64) Pressure {
	return Pressure{value * 3386.389 / 100.0}
}

func (p Pressure) Pascal() float64 {
	return p.hectopascal * 100.0
}

func (p Pressure) Hectopascal() float64 {
	return p.hectopascal
}

func (p Pressure) Kilopascal() float64 {
	return p.hectopascal / 10.0
}

func (p Pressure) Millibar() float64 {
	return p.Hectopascal()
}

func (p Pressure) MillimeterMercury() float64 {
	return p.Pascal() / 133.322387415
}

func (p Pressure) InchMercury() float64 {
	return p.Pascal() / 3386.389
}

// Get returns the pressure in unit along with the unit's symbol.
func (p Pressure) Get(unit string) (float64, string, error) {
	switch strings.ToLower(unit) {
	case "", "hpa", "hectopascal":
		return p.Hectopascal(), "hPa", nil
	case "pa", "pascal":
		return p.Pascal(), "Pa", nil
	case "kpa", "kilopascal":
		return p.Kilopascal(), "kPa", nil
	case "mbar", "millibar":
		return p.Millibar(), "mbar", nil
	case "mmhg":
		return p.MillimeterMercury(), "mmHg", nil
	case "inhg":
		return p.InchMercury(), "inHg", nil
	}
	return 0, "", unknownUnit("pressure", unit)
}
