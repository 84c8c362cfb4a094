// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

// Package parser turns the name=value sensor file written by the sampling
// script into loop records.
//
//	outTemp=21.4
//	outHumidity=55.0
package parser

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/geoffholden/dhtwx/data"
	jww "github.com/spf13/jwalterweatherman"
)

// MaxLineLength is the longest line Parse accepts, in bytes.
const MaxLineLength = 64 * 1024

// Parse reads name=value lines from reader. Blank lines are ignored; lines
// without a name, without '=' or longer than MaxLineLength are skipped with
// a warning. The pairs read before a read error are returned along with the
// error.
func Parse(reader io.Reader, log *jww.Notepad) (RawSample, error) {
	var sample RawSample
	br := bufio.NewReaderSize(reader, MaxLineLength)
	lineno := 0
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			return sample, nil
		}
		if err != nil {
			return sample, err
		}
		lineno++
		line := string(chunk)
		if isPrefix {
			for isPrefix && err == nil {
				_, isPrefix, err = br.ReadLine()
			}
			log.WARN.Printf("skipping line %d: longer than %d bytes", lineno, MaxLineLength)
			if err == io.EOF {
				return sample, nil
			}
			if err != nil {
				return sample, err
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value, ok := SplitLine(line)
		if !ok {
			log.WARN.Printf("skipping line %d: no '=' in %q", lineno, line)
			continue
		}
		if name == "" {
			log.WARN.Printf("skipping line %d: empty name in %q", lineno, line)
			continue
		}
		sample.Add(name, value)
	}
}

// Convert maps a raw sample into a metric record stamped with now. Values
// that are not numbers are logged and recorded as missing.
func Convert(sample RawSample, labels LabelMap, now time.Time, log *jww.Notepad) data.Record {
	record := data.NewRecord(now)
	for _, p := range sample.Pairs() {
		value := data.Missing
		if f, err := strconv.ParseFloat(p.Value, 64); err != nil {
			log.ERROR.Printf("cannot read value for '%s': %v", p.Name, err)
		} else {
			value = data.Number(f)
		}
		label := labels.Label(p.Name)
		if !record.Set(label, value) {
			log.WARN.Printf("dropping field '%s': '%s' is reserved", p.Name, label)
		}
	}
	return record
}
