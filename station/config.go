// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/geoffholden/dhtwx/parser"
	"github.com/geoffholden/dhtwx/reader"
	"gopkg.in/gcfg.v1"
)

// Config is a station configuration file:
//
//	[station]
//	station-type = Dht22Parse
//
//	[driver "Dht22Parse"]
//	path = /tmp/dht22_sensor
//	poll-interval = 20
//	label = outTemp=temperature_c
type Config struct {
	Station struct {
		StationType string `gcfg:"station-type"`
	}

	Driver map[string]*Driver
}

type Driver struct {
	Path         string
	PollInterval string `gcfg:"poll-interval"`
	Label        []string
}

func LoadFile(filename string) (*Config, error) {
	var c Config
	if err := gcfg.FatalOnly(gcfg.ReadFileInto(&c, filename)); err != nil {
		return nil, err
	}
	return &c, nil
}

func LoadString(s string) (*Config, error) {
	var c Config
	if err := gcfg.FatalOnly(gcfg.ReadStringInto(&c, s)); err != nil {
		return nil, err
	}
	return &c, nil
}

// ReaderConfig resolves the driver section named by station-type on top of
// the variant defaults.
func (c *Config) ReaderConfig() (reader.Config, error) {
	o := Options{Type: c.Station.StationType}
	v, err := Lookup(o.Type)
	if err != nil {
		return reader.Config{}, err
	}
	for name, d := range c.Driver {
		if d != nil && strings.EqualFold(name, v.Name) {
			o.Path = d.Path
			o.PollInterval = d.PollInterval
			o.Labels = d.Label
		}
	}
	return o.ReaderConfig()
}

// Options are driver settings given as text, from flags or a config file.
// Empty settings fall back to the variant defaults.
type Options struct {
	Type         string
	Path         string
	PollInterval string
	Labels       []string
}

func (o Options) ReaderConfig() (reader.Config, error) {
	v, err := Lookup(o.Type)
	if err != nil {
		return reader.Config{}, err
	}
	cfg := v.ReaderConfig()
	if o.Path != "" {
		cfg.Path = o.Path
	}
	if o.PollInterval != "" {
		cfg.PollInterval, err = ParseInterval(o.PollInterval)
		if err != nil {
			return reader.Config{}, err
		}
	}
	cfg.LabelMap, err = parser.ParseLabelMap(o.Labels)
	if err != nil {
		return reader.Config{}, err
	}
	return cfg, nil
}

// ParseInterval reads a poll interval in seconds, fractions allowed.
func ParseInterval(s string) (time.Duration, error) {
	secs, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("poll interval %q: %w", s, err)
	}
	if secs <= 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("poll interval %q: must be a positive number of seconds", s)
	}
	if secs >= math.MaxInt64/float64(time.Second) {
		return 0, fmt.Errorf("poll interval %q: too long", s)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Install writes the configuration the installer adds for a new station.
func Install(w io.Writer, v Variant) error {
	_, err := fmt.Fprintf(w, `# %s
# installer for the %s driver, version %s

[station]
	station-type = %s

[driver "%s"]
	path = %s
	poll-interval = %s
`, v.Description, strings.ToLower(v.Name), v.Version, v.Name, v.Name, v.Path,
		strconv.FormatFloat(v.InstallInterval.Seconds(), 'f', -1, 64))
	return err
}
