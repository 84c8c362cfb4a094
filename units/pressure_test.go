// Copyright © 2016 Geoff Holden <geoff@geoffholden.com>

package units

import (
	"testing"
	"testing/quick"
)

func TestPressureHectopascal(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		return floatEquals(x, NewPressureHectopascal(x).Hectopascal())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestPressureKilopascal(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		return floatEquals(x, NewPressureKilopascal(x).Kilopascal())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestPressurePascal(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		return floatEquals(x, NewPressurePascal(x).Pascal())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestPressureInchMercury(t *testing.T) {
	if err := quick.Check(func(x float64) bool {
		return floatEquals(x, NewPressureInchMercury(x).InchMercury())
	}, nil); err != nil {
		t.Error(err)
	}
}

func TestPressureGet(t *testing.T) {
	pres := NewPressureHectopascal(1013.25)

	value, symbol, err := pres.Get("")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 1013.25) || symbol != "hPa" {
		t.Fatal("Default should be hPa")
	}

	value, _, err = pres.Get("inHg")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 29.9213) {
		t.Fatal("Value should be 29.9213, got", value)
	}

	value, _, err = pres.Get("mmHg")
	if err != nil {
		t.Fatal(err)
	}
	if !floatEquals(value, 760.0) {
		t.Fatal("Value should be 760, got", value)
	}

	if _, _, err := pres.Get("psi"); err == nil {
		t.Fatal("Invalid unit should give an error")
	}
}
