// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package data

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// UnitSystem identifies the unit system of every value in a Record. The
// numeric codes are the ones weewx uses for usUnits.
type UnitSystem int

const (
	US       UnitSystem = 0x01
	Metric   UnitSystem = 0x10
	MetricWX UnitSystem = 0x11
)

func (u UnitSystem) String() string {
	switch u {
	case US:
		return "US"
	case Metric:
		return "METRIC"
	case MetricWX:
		return "METRICWX"
	}
	return "UNKNOWN(" + strconv.Itoa(int(u)) + ")"
}

// Reserved record keys. Fields may not use them.
const (
	DateTimeKey = "dateTime"
	UnitsKey    = "usUnits"
)

// Value is a measurement that is either a number or missing. The zero
// Value is Missing.
type Value struct {
	v     float64
	valid bool
}

var Missing Value

func Number(v float64) Value {
	return Value{v: v, valid: true}
}

func (v Value) Float() (float64, bool) {
	return v.v, v.valid
}

func (v Value) IsMissing() bool {
	return !v.valid
}

func (v Value) String() string {
	if !v.valid {
		return "missing"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

// MarshalJSON encodes missing values as null. NaN and the infinities have
// no JSON form and are encoded as null as well.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid || math.IsNaN(v.v) || math.IsInf(v.v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.v, 'g', -1, 64), nil
}

type Field struct {
	Name  string
	Value Value
}

// Record is one loop packet: a capture time, the unit system and the
// measurements in the order they were read.
type Record struct {
	DateTime int64
	Units    UnitSystem
	Fields   []Field
}

// NewRecord returns an empty metric record stamped with t.
func NewRecord(t time.Time) Record {
	return Record{DateTime: Timestamp(t), Units: Metric}
}

// Timestamp is t in epoch seconds, rounded half up.
func Timestamp(t time.Time) int64 {
	secs := t.Unix()
	if t.Nanosecond() >= int(500*time.Millisecond) {
		secs++
	}
	return secs
}

// Set stores value under name. An existing field keeps its position and
// takes the new value. Reserved keys are refused.
func (r *Record) Set(name string, value Value) bool {
	if name == DateTimeKey || name == UnitsKey {
		return false
	}
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			r.Fields[i].Value = value
			return true
		}
	}
	r.Fields = append(r.Fields, Field{Name: name, Value: value})
	return true
}

func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Missing, false
}

func (r Record) Time() time.Time {
	return time.Unix(r.DateTime, 0)
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"` + DateTimeKey + `":`)
	buf.WriteString(strconv.FormatInt(r.DateTime, 10))
	buf.WriteString(`,"` + UnitsKey + `":`)
	buf.WriteString(strconv.Itoa(int(r.Units)))
	for _, f := range r.Fields {
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, _ := f.Value.MarshalJSON()
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Record) String() string {
	var buf bytes.Buffer
	buf.WriteString("{" + DateTimeKey + ": ")
	buf.WriteString(strconv.FormatInt(r.DateTime, 10))
	buf.WriteString(", " + UnitsKey + ": ")
	buf.WriteString(strconv.Itoa(int(r.Units)))
	for _, f := range r.Fields {
		buf.WriteString(", ")
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value.String())
	}
	buf.WriteByte('}')
	return buf.String()
}
