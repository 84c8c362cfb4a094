// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

// Package reader polls a sensor file and produces weewx loop records.
package reader

import (
	"context"
	"io"
	"iter"
	"os"
	"time"

	"github.com/geoffholden/dhtwx/data"
	"github.com/geoffholden/dhtwx/parser"
	"github.com/geoffholden/dhtwx/sink"
	jww "github.com/spf13/jwalterweatherman"
)

const (
	DefaultPath         = "/tmp/dht22_sensor"
	DefaultPollInterval = 30 * time.Second
	DefaultHardwareName = "Dht22Parse"
)

type Config struct {
	Path         string
	PollInterval time.Duration
	LabelMap     parser.LabelMap
	HardwareName string
}

type Reader struct {
	path     string
	interval time.Duration
	labels   parser.LabelMap
	name     string
	log      *jww.Notepad
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

type Option func(*Reader)

// WithClock replaces the wall clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(r *Reader) { r.now = now }
}

// WithSleep replaces the delay between polls. The function must return
// early with an error once ctx is done.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(r *Reader) { r.sleep = sleep }
}

func New(cfg Config, log *jww.Notepad, opts ...Option) *Reader {
	if log == nil {
		log = jww.NewNotepad(jww.LevelFatal, jww.LevelFatal, io.Discard, io.Discard, "", 0)
	}
	r := &Reader{
		path:     cfg.Path,
		interval: cfg.PollInterval,
		labels:   cfg.LabelMap.Clone(),
		name:     cfg.HardwareName,
		log:      log,
		now:      time.Now,
		sleep:    sleep,
	}
	if r.path == "" {
		r.path = DefaultPath
	}
	if r.interval <= 0 {
		r.interval = DefaultPollInterval
	}
	if r.name == "" {
		r.name = DefaultHardwareName
	}
	for _, opt := range opts {
		opt(r)
	}

	log.INFO.Printf("data file is %s", r.path)
	log.INFO.Printf("polling interval is %v", r.interval)
	log.INFO.Printf("label map is %v", r.labels)
	return r
}

func (r *Reader) HardwareName() string {
	return r.name
}

func (r *Reader) Path() string {
	return r.path
}

func (r *Reader) PollInterval() time.Duration {
	return r.interval
}

// Poll runs one read/parse cycle. A file that cannot be read yields a
// record with no fields.
func (r *Reader) Poll() data.Record {
	sample, err := r.read()
	if err != nil {
		r.log.ERROR.Printf("read failed: %v", err)
		sample = parser.RawSample{}
	}
	return parser.Convert(sample, r.labels, r.now(), r.log)
}

func (r *Reader) read() (parser.RawSample, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return parser.RawSample{}, err
	}
	defer f.Close()
	return parser.Parse(f, r.log)
}

// Records is the unbounded sequence of loop records, one per poll
// interval. It ends when ctx is done or the caller stops ranging.
func (r *Reader) Records(ctx context.Context) iter.Seq[data.Record] {
	return func(yield func(data.Record) bool) {
		for ctx.Err() == nil {
			if !yield(r.Poll()) {
				return
			}
			if err := r.sleep(ctx, r.interval); err != nil {
				return
			}
		}
	}
}

// Once polls a single time and hands the record to every sink.
func (r *Reader) Once(sinks ...sink.Sink) data.Record {
	record := r.Poll()
	r.dispatch(record, sinks)
	return record
}

// Run feeds every record to the sinks until ctx is done. Sink errors are
// logged and do not stop the loop.
func (r *Reader) Run(ctx context.Context, sinks ...sink.Sink) error {
	for record := range r.Records(ctx) {
		r.dispatch(record, sinks)
	}
	return ctx.Err()
}

func (r *Reader) dispatch(record data.Record, sinks []sink.Sink) {
	r.log.DEBUG.Println("loop packet", record)
	for _, s := range sinks {
		if err := s.Emit(record); err != nil {
			r.log.ERROR.Printf("emit failed: %v", err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
