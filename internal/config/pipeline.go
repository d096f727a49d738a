package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/criticalsnake/tracks-backend-go/internal/gate"
	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/reconstruct"
)

// PipelineConfig is the YAML form of the reconstruction options.
//
//	coordFilter:
//	  type: bounds
//	  minLat: 52.3
//	  minLng: 13.0
//	  maxLat: 52.7
//	  maxLng: 13.8
//	trackRestrictions:
//	  maxGapDuration: 300
//	  minDataPoints: 10
type PipelineConfig struct {
	CoordFilter       gate.Config              `yaml:"coordFilter"`
	TrackRestrictions models.TrackRestrictions `yaml:"trackRestrictions"`
}

// DefaultPipelineConfig admits every coordinate and uses the default restrictions.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		CoordFilter:       gate.Config{Type: gate.TypeAll},
		TrackRestrictions: models.DefaultTrackRestrictions,
	}
}

// LoadPipelineConfig reads the pipeline configuration at path. A missing file
// yields the defaults. Restrictions left out of the file keep their defaults.
func LoadPipelineConfig(path string) (PipelineConfig, error) {
	cfg := DefaultPipelineConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] Pipeline config %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read pipeline config: %w", err)
	}
	return ParsePipelineConfig(data)
}

// ParsePipelineConfig decodes and validates a YAML pipeline configuration.
func ParsePipelineConfig(data []byte) (PipelineConfig, error) {
	cfg := DefaultPipelineConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse pipeline config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field ranges and that the gate can be built.
func (c PipelineConfig) Validate() error {
	v := validator.New()
	if err := v.Struct(c.CoordFilter); err != nil {
		return fmt.Errorf("invalid coordFilter: %w", err)
	}
	if err := v.Struct(c.TrackRestrictions); err != nil {
		return fmt.Errorf("invalid trackRestrictions: %w", err)
	}
	if _, err := gate.FromConfig(c.CoordFilter); err != nil {
		return fmt.Errorf("invalid coordFilter: %w", err)
	}
	return nil
}

// Options converts the configuration into reconstruction options.
func (c PipelineConfig) Options() (reconstruct.Options, error) {
	g, err := gate.FromConfig(c.CoordFilter)
	if err != nil {
		return reconstruct.Options{}, fmt.Errorf("invalid coordFilter: %w", err)
	}
	opts := reconstruct.Options{
		CoordFilter:       g,
		TrackRestrictions: c.TrackRestrictions,
	}
	if err := opts.Validate(); err != nil {
		return reconstruct.Options{}, err
	}
	return opts, nil
}
