// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package parser

import (
	"fmt"
	"strings"
)

type Pair struct {
	Name  string
	Value string
}

// RawSample holds the name=value pairs of one poll in file order. A name
// seen twice keeps its first position and its last value.
type RawSample struct {
	pairs []Pair
}

func (s *RawSample) Add(name, value string) {
	for i := range s.pairs {
		if s.pairs[i].Name == name {
			s.pairs[i].Value = value
			return
		}
	}
	s.pairs = append(s.pairs, Pair{Name: name, Value: value})
}

func (s RawSample) Get(name string) (string, bool) {
	for _, p := range s.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

func (s RawSample) Pairs() []Pair {
	return s.pairs
}

func (s RawSample) Len() int {
	return len(s.pairs)
}

// LabelMap renames raw sensor fields to output fields.
type LabelMap map[string]string

// Label returns the output name for a raw field name.
func (m LabelMap) Label(name string) string {
	if label, ok := m[name]; ok {
		return label
	}
	return name
}

func (m LabelMap) Clone() LabelMap {
	c := make(LabelMap, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// ParseLabelMap builds a LabelMap from "raw=name" entries.
func ParseLabelMap(entries []string) (LabelMap, error) {
	m := make(LabelMap, len(entries))
	for _, entry := range entries {
		raw, label, ok := SplitLine(entry)
		if !ok || raw == "" || label == "" {
			return nil, fmt.Errorf("label %q: expected raw=name", entry)
		}
		m[raw] = label
	}
	return m, nil
}

// SplitLine splits a line at its first '=' and trims both halves.
func SplitLine(line string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(name), strings.TrimSpace(value), true
}
