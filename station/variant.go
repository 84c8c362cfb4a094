// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package station

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/geoffholden/dhtwx/reader"
)

var ErrUnknownVariant = errors.New("unknown station type")

// Variant is one flavour of the file parser driver: its station type, the
// file its sampling script writes and its polling defaults.
type Variant struct {
	Name        string
	Description string
	Version     string
	Path        string

	// PollInterval is the driver default; InstallInterval is what the
	// installer writes into a new station configuration.
	PollInterval    time.Duration
	InstallInterval time.Duration
}

const DefaultVariant = "Dht22Parse"

var variants map[string]Variant

func Register(v Variant) {
	if nil == variants {
		variants = make(map[string]Variant)
	}
	variants[strings.ToLower(v.Name)] = v
}

// Lookup finds a variant by station type, ignoring case.
func Lookup(name string) (Variant, error) {
	if name == "" {
		name = DefaultVariant
	}
	v, ok := variants[strings.ToLower(name)]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q, one of [%s]", ErrUnknownVariant, name, strings.Join(Variants(), ", "))
	}
	return v, nil
}

func Variants() []string {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, v.Name)
	}
	sort.Strings(names)
	return names
}

func (v Variant) ReaderConfig() reader.Config {
	return reader.Config{
		Path:         v.Path,
		PollInterval: v.PollInterval,
		HardwareName: v.Name,
	}
}

func init() {
	Register(Variant{
		Name:            "Dht22Parse",
		Description:     "File parser driver for DHT22 sensor file in weewx.",
		Version:         "0.1",
		Path:            "/tmp/dht22_sensor",
		PollInterval:    30 * time.Second,
		InstallInterval: 20 * time.Second,
	})
	Register(Variant{
		Name:            "Dht22Bmp280Parse",
		Description:     "File parser driver for DHT22/BMP280 sensor file in weewx.",
		Version:         "0.1",
		Path:            "/tmp/dht22bmp280_sensor",
		PollInterval:    30 * time.Second,
		InstallInterval: 20 * time.Second,
	})
}
