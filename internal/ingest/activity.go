// Package ingest loads activity data files and turns them into
// calculation inputs.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carbonex/footprint/internal/engine"
	"github.com/carbonex/footprint/internal/logging"
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrUnsupportedFormat indicates the activity file extension is
// neither YAML nor JSON.
const ErrUnsupportedFormat = constError("unsupported activity file format")

// ActivityFile is the on-disk shape of an assessment input. Field
// names match the wire shape of engine.CalculationInput so the same
// document works for the CLI and the HTTP API.
type ActivityFile struct {
	Metadata engine.AssessmentMetadata `json:"metadata" yaml:"metadata"`
	Region   string                    `json:"region,omitempty" yaml:"region,omitempty"`
	Scope1   []engine.Scope1Entry      `json:"scope1Data,omitempty" yaml:"scope1_data,omitempty"`
	Scope2   []engine.Scope2Entry      `json:"scope2Data,omitempty" yaml:"scope2_data,omitempty"`
	Scope3   []engine.Scope3Entry      `json:"scope3Data,omitempty" yaml:"scope3_data,omitempty"`
}

// Input converts the file document into the engine's input type.
func (f *ActivityFile) Input() engine.CalculationInput {
	return engine.CalculationInput{
		Metadata: f.Metadata,
		Region:   f.Region,
		Scope1:   f.Scope1,
		Scope2:   f.Scope2,
		Scope3:   f.Scope3,
	}
}

// Parse decodes activity data from raw bytes. format is "yaml" or
// "json"; it normally comes from the file extension.
func Parse(ctx context.Context, data []byte, format string) (*ActivityFile, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "parse_activity").
		Str("format", format).
		Int("data_size_bytes", len(data)).
		Msg("parsing activity data")

	var file ActivityFile
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing activity YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing activity JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Int("scope1_entries", len(file.Scope1)).
		Int("scope2_entries", len(file.Scope2)).
		Int("scope3_entries", len(file.Scope3)).
		Msg("activity data parsed")

	return &file, nil
}

// LoadFile reads and parses the activity file at path, inferring the
// format from the extension.
func LoadFile(ctx context.Context, path string) (*ActivityFile, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_activity").
		Str("path", path).
		Msg("loading activity file")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error().
			Ctx(ctx).
			Str("component", "ingest").
			Err(err).
			Str("path", path).
			Msg("failed to read activity file")
		return nil, fmt.Errorf("reading activity file: %w", err)
	}

	format := strings.TrimPrefix(filepath.Ext(path), ".")
	return Parse(ctx, data, format)
}
