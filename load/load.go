// Package load turns YAML or JSON text into ir.Node trees. It is the
// boundary between wire formats and the validator/resolver, which only
// ever see ir values.
package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/dataspec-format/dataspec/debug"
	"github.com/dataspec-format/dataspec/ir"
)

type Format int

const (
	AutoFormat Format = iota
	YAMLFormat
	JSONFormat
)

func (f Format) String() string {
	switch f {
	case YAMLFormat:
		return "yaml"
	case JSONFormat:
		return "json"
	}
	return "auto"
}

// ParseFormat maps a format name to a Format; the empty string means
// auto-detection.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "":
		return AutoFormat, nil
	case "yaml", "yml":
		return YAMLFormat, nil
	case "json":
		return JSONFormat, nil
	}
	return AutoFormat, fmt.Errorf("unknown format %q", s)
}

// Parse decodes a document. With AutoFormat it tries YAML first and
// falls back to JSON.
func Parse(d []byte, f Format) (*ir.Node, error) {
	switch f {
	case YAMLFormat:
		return parseYAML(d)
	case JSONFormat:
		return parseJSON(d)
	default:
		res, yerr := parseYAML(d)
		if yerr == nil {
			return res, nil
		}
		res, jerr := parseJSON(d)
		if jerr == nil {
			return res, nil
		}
		return nil, yerr
	}
}

// File loads a document from a file, inferring the format from the
// extension unless one is forced.
func File(path string, f Format) (*ir.Node, error) {
	if f == AutoFormat {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			f = YAMLFormat
		case ".json":
			f = JSONFormat
		default:
			return nil, fmt.Errorf("cannot infer file format from extension: %s", path)
		}
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	if debug.Load() {
		debug.Logf("loading %s as %s\n", path, f)
	}
	res, err := Parse(d, f)
	if err != nil {
		return nil, fmt.Errorf("error loading %q: %w", path, err)
	}
	return res, nil
}

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.Unmarshal(d, &v); err != nil {
		return nil, fmt.Errorf("error decoding yaml: %w", err)
	}
	return ir.FromAny(v)
}

// parseJSON uses a number-preserving decoder so that integers stay
// integers in the ir representation.
func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("error decoding json: %w", err)
	}
	return ir.FromAny(v)
}
