// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package reader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/geoffholden/dhtwx/data"
	"github.com/geoffholden/dhtwx/parser"
	"github.com/geoffholden/dhtwx/sink"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1700000000, 0)

type harness struct {
	path   string
	log    *bytes.Buffer
	sleeps []time.Duration
	now    time.Time
}

func newHarness(t *testing.T, contents string) *harness {
	t.Helper()
	h := &harness{
		path: filepath.Join(t.TempDir(), "dht22_sensor"),
		log:  new(bytes.Buffer),
		now:  epoch,
	}
	if contents != "" {
		require.NoError(t, os.WriteFile(h.path, []byte(contents), 0o644))
	}
	return h
}

func (h *harness) reader(labels parser.LabelMap) *Reader {
	log := jww.NewNotepad(jww.LevelTrace, jww.LevelFatal, h.log, io.Discard, "", 0)
	return New(Config{Path: h.path, PollInterval: 20 * time.Second, LabelMap: labels}, log,
		WithClock(func() time.Time { return h.now }),
		WithSleep(func(ctx context.Context, d time.Duration) error {
			h.sleeps = append(h.sleeps, d)
			h.now = h.now.Add(d)
			return ctx.Err()
		}),
	)
}

func TestPollReadsFile(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\noutHumidity=55.0\n")
	record := h.reader(nil).Poll()

	assert.Equal(t, data.Record{
		DateTime: epoch.Unix(),
		Units:    data.Metric,
		Fields: []data.Field{
			{Name: "outTemp", Value: data.Number(21.4)},
			{Name: "outHumidity", Value: data.Number(55.0)},
		},
	}, record)
	assert.NotContains(t, h.log.String(), "ERROR")
}

func TestPollAppliesLabelMap(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\noutHumidity=55.0\n")
	record := h.reader(parser.LabelMap{"outTemp": "temperature_c"}).Poll()

	_, ok := record.Get("outTemp")
	assert.False(t, ok)
	v, ok := record.Get("temperature_c")
	require.True(t, ok)
	assert.Equal(t, data.Number(21.4), v)
}

func TestPollBadValueIsMissing(t *testing.T) {
	h := newHarness(t, "outTemp=abc\n")
	record := h.reader(nil).Poll()

	v, ok := record.Get("outTemp")
	require.True(t, ok)
	assert.True(t, v.IsMissing())
	assert.Contains(t, h.log.String(), "cannot read value for 'outTemp'")
}

func TestPollMissingFile(t *testing.T) {
	h := newHarness(t, "")
	r := h.reader(nil)

	record := r.Poll()
	assert.Equal(t, data.Record{DateTime: epoch.Unix(), Units: data.Metric}, record)
	assert.Contains(t, h.log.String(), "ERROR")
	assert.Contains(t, h.log.String(), "read failed")

	require.NoError(t, os.WriteFile(h.path, []byte("outTemp=1\n"), 0o644))
	record = r.Poll()
	assert.Len(t, record.Fields, 1)
}

func TestPollUnreadablePath(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, os.Mkdir(h.path, 0o755))

	record := h.reader(nil).Poll()
	assert.Empty(t, record.Fields)
	assert.Contains(t, h.log.String(), "read failed")
}

func TestPollSkipsMalformedLine(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\nnonsense\npressure=1013.2\n")
	record := h.reader(nil).Poll()

	assert.Len(t, record.Fields, 2)
	assert.Contains(t, h.log.String(), "WARN")
}

func TestPollIsIdempotent(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\noutHumidity=55.0\npressure=1013.2\n")
	r := h.reader(nil)

	first := r.Poll()
	h.now = h.now.Add(time.Minute)
	second := r.Poll()

	assert.Equal(t, first.Fields, second.Fields)
	assert.Equal(t, first.Units, second.Units)
	assert.Equal(t, first.DateTime+60, second.DateTime)
}

func TestRecordsSleepsBetweenPolls(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\n")
	r := h.reader(nil)

	var stamps []int64
	for record := range r.Records(context.Background()) {
		stamps = append(stamps, record.DateTime)
		if len(stamps) == 3 {
			break
		}
	}

	assert.Equal(t, []int64{epoch.Unix(), epoch.Unix() + 20, epoch.Unix() + 40}, stamps)
	assert.Equal(t, []time.Duration{20 * time.Second, 20 * time.Second}, h.sleeps)
}

func TestRecordsStopsOnCancel(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\n")
	r := h.reader(nil)

	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	for range r.Records(ctx) {
		n++
		if n == 2 {
			cancel()
		}
	}
	assert.Equal(t, 2, n)

	n = 0
	for range r.Records(ctx) {
		n++
	}
	assert.Zero(t, n, "a cancelled context yields nothing")
}

func TestRunDispatchesToSinks(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\n")
	r := h.reader(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []data.Record
	failing := sink.Func(func(data.Record) error { return errors.New("broker down") })
	counting := sink.Func(func(record data.Record) error {
		got = append(got, record)
		if len(got) == 3 {
			cancel()
		}
		return nil
	})

	err := r.Run(ctx, failing, counting)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, got, 3)
	assert.Contains(t, h.log.String(), "emit failed: broker down")
}

func TestOnce(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\n")
	r := h.reader(nil)

	var got []data.Record
	record := r.Once(sink.Func(func(record data.Record) error {
		got = append(got, record)
		return nil
	}))
	assert.Equal(t, []data.Record{record}, got)
	assert.Empty(t, h.sleeps)
}

func TestDefaultsAndStartupLog(t *testing.T) {
	var buf bytes.Buffer
	log := jww.NewNotepad(jww.LevelTrace, jww.LevelFatal, &buf, io.Discard, "", 0)
	r := New(Config{}, log)

	assert.Equal(t, DefaultPath, r.Path())
	assert.Equal(t, DefaultPollInterval, r.PollInterval())
	assert.Equal(t, DefaultHardwareName, r.HardwareName())
	assert.Contains(t, buf.String(), "data file is /tmp/dht22_sensor")
	assert.Contains(t, buf.String(), "polling interval is 30s")

	assert.NotPanics(t, func() { New(Config{}, nil) })
}

func TestLabelMapIsCopied(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\n")
	labels := parser.LabelMap{"outTemp": "a"}
	r := h.reader(labels)
	labels["outTemp"] = "b"

	_, ok := r.Poll().Get("a")
	assert.True(t, ok)
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, sleep(context.Background(), time.Millisecond))
}

func TestRunSurvivesInvalidFieldNames(t *testing.T) {
	h := newHarness(t, "outTemp=21.4\n\xff\xfe=1\n")
	reg := prometheus.NewRegistry()
	metrics, err := sink.NewPrometheus(reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	polls := 0
	counter := sink.Func(func(data.Record) error {
		polls++
		if polls == 2 {
			cancel()
		}
		return nil
	})

	err = h.reader(nil).Run(ctx, metrics, counter)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, polls)
	assert.NotContains(t, h.log.String(), "emit failed")
	n, err := testutil.GatherAndCount(reg, "dhtwx_reading")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPollKeepsFieldsAroundLongLine(t *testing.T) {
	long := "note=" + strings.Repeat("x", 70000)
	h := newHarness(t, "outTemp=21.4\n"+long+"\noutHumidity=55.0\n")
	record := h.reader(nil).Poll()

	assert.Len(t, record.Fields, 2)
	assert.Equal(t, data.Number(55.0), record.Fields[1].Value)
	assert.Contains(t, h.log.String(), "skipping line 2")
	assert.NotContains(t, h.log.String(), "read failed")
}
