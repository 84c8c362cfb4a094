// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"strings"
)

// Temperature is stored in degrees Celsius, the metric unit the sensors
// report.
type Temperature struct {
	celsius float64
}

func NewTemperatureCelsius(value float64) Temperature {
	return Temperature{value}
}

func NewTemperatureFahrenheit(value float64) Temperature {
	return Temperature{(value - 32) / 1.8}
}

func NewTemperatureKelvin(value float64) Temperature {
	return Temperature{value - 273.15}
}

func (t Temperature) Celsius() float64 {
	return t.celsius
}

func (t Temperature) Fahrenheit() float64 {
	return t.celsius*1.8 + 32
}

func (t Temperature) Kelvin() float64 {
	return t.celsius + 273.15
}

// Get returns the temperature in unit along with the unit's symbol.
func (t Temperature) Get(unit string) (float64, string, error) {
	switch strings.ToLower(unit) {
	case "", "c", "celsius":
		return t.Celsius(), "°C", nil
	case "f", "fahrenheit":
		return t.Fahrenheit(), "°F", nil
	case "k", "kelvin":
		return t.Kelvin(), "K", nil
	}
	return 0, "", unknownUnit("temperature", unit)
}
