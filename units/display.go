// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"fmt"
	"strings"
)

// Kind is the physical quantity a loop packet field measures.
type Kind int

const (
	Unknown Kind = iota
	TemperatureKind
	PressureKind
	HumidityKind
)

// ForField classifies a weewx field name. Names the label map invents are
// Unknown and are shown as read.
func ForField(name string) Kind {
	switch {
	case name == "outTemp", name == "inTemp", name == "dewpoint",
		name == "windchill", name == "heatindex", name == "appTemp",
		strings.HasPrefix(name, "extraTemp"),
		strings.HasPrefix(name, "soilTemp"),
		strings.HasPrefix(name, "leafTemp"):
		return TemperatureKind
	case name == "pressure", name == "barometer", name == "altimeter":
		return PressureKind
	case name == "outHumidity", name == "inHumidity",
		strings.HasPrefix(name, "extraHumid"):
		return HumidityKind
	}
	return Unknown
}

// Display selects the units records are shown in. Empty fields mean the
// metric default.
type Display struct {
	Temperature string
	Pressure    string
}

func (d Display) Validate() error {
	if _, _, err := NewTemperatureCelsius(0).Get(d.Temperature); err != nil {
		return err
	}
	if _, _, err := NewPressureHectopascal(0).Get(d.Pressure); err != nil {
		return err
	}
	return nil
}

// Convert takes a metric value of the named field to the display unit and
// returns it with the unit symbol. Fields of unknown kind come back as is
// with an empty symbol.
func (d Display) Convert(field string, metric float64) (float64, string, error) {
	switch ForField(field) {
	case TemperatureKind:
		return NewTemperatureCelsius(metric).Get(d.Temperature)
	case PressureKind:
		return NewPressureHectopascal(metric).Get(d.Pressure)
	case HumidityKind:
		return metric, "%", nil
	}
	return metric, "", nil
}

type UnknownUnitError struct {
	Quantity string
	Unit     string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown %s unit %q", e.Quantity, e.Unit)
}

func unknownUnit(quantity, unit string) error {
	return &UnknownUnitError{Quantity: quantity, Unit: unit}
}
