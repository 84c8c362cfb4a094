// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package sink

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/geoffholden/dhtwx/data"
	"github.com/geoffholden/dhtwx/units"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Writer prints records, one per line. The text format shows the capture
// time followed by the fields converted to the display units; the JSON
// format always carries the metric values.
type Writer struct {
	w        io.Writer
	format   string
	display  units.Display
	Location *time.Location
}

func NewWriter(w io.Writer, format string, display units.Display) (*Writer, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		format = FormatText
	case FormatJSON:
		format = FormatJSON
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	if err := display.Validate(); err != nil {
		return nil, err
	}
	return &Writer{w: w, format: format, display: display, Location: time.Local}, nil
}

func (w *Writer) Emit(record data.Record) error {
	var line []byte
	if w.format == FormatJSON {
		b, err := json.Marshal(record)
		if err != nil {
			return err
		}
		line = append(b, '\n')
	} else {
		line = w.text(record)
	}
	_, err := w.w.Write(line)
	return err
}

func (w *Writer) text(record data.Record) []byte {
	var buf bytes.Buffer
	buf.WriteString(record.Time().In(w.Location).Format("2006-01-02 15:04:05 MST"))
	buf.WriteString(" (" + strconv.FormatInt(record.DateTime, 10) + ")")
	for i, f := range record.Fields {
		if i == 0 {
			buf.WriteString(" ")
		} else {
			buf.WriteString(", ")
		}
		buf.WriteString(f.Name + ": ")
		v, ok := f.Value.Float()
		if !ok {
			buf.WriteString("missing")
			continue
		}
		// Validate has already accepted the display units.
		converted, symbol, _ := w.display.Convert(f.Name, v)
		if symbol == "" {
			buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			continue
		}
		buf.WriteString(strconv.FormatFloat(math.Round(converted*100)/100, 'f', -1, 64))
		buf.WriteString(" " + symbol)
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}
