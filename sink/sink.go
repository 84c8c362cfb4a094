// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

// Package sink holds the consumers of loop records.
package sink

import (
	"io"

	"github.com/geoffholden/dhtwx/data"
	jww "github.com/spf13/jwalterweatherman"
)

// Sink consumes loop records. Emit must not block indefinitely.
type Sink interface {
	Emit(record data.Record) error
}

// Func adapts a function to a Sink.
type Func func(record data.Record) error

func (f Func) Emit(record data.Record) error {
	return f(record)
}

func quiet(log *jww.Notepad) *jww.Notepad {
	if log != nil {
		return log
	}
	return jww.NewNotepad(jww.LevelFatal, jww.LevelFatal, io.Discard, io.Discard, "", 0)
}
