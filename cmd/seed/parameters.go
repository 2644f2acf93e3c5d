package main

import (
	"context"
	"embed"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/JaimeStill/system-api/internal/parameters"
	"github.com/pelletier/go-toml/v2"
)

//go:embed seeds/*.toml
var seedFiles embed.FS

func init() {
	registerSeeder(&ParameterSeeder{})
}

// ParameterSeeder imports a TOML document into the parameter store. Nested
// tables become dotted keys. Existing keys are kept unless overwrite is set.
type ParameterSeeder struct {
	file      string
	overwrite bool
}

func (s *ParameterSeeder) Name() string {
	return "parameters"
}

func (s *ParameterSeeder) Description() string {
	return "Imports default parameters from a TOML document"
}

// SetFile configures an external seed file path, overriding the embedded default.
func (s *ParameterSeeder) SetFile(path string) {
	s.file = path
}

// SetOverwrite controls whether seeded values replace existing ones.
func (s *ParameterSeeder) SetOverwrite(overwrite bool) {
	s.overwrite = overwrite
}

// Seed writes every seeded key in a single Apply.
func (s *ParameterSeeder) Seed(ctx context.Context, store parameters.Store) error {
	doc, err := s.loadSeedData()
	if err != nil {
		return err
	}

	existing, err := store.All(ctx)
	if err != nil {
		return fmt.Errorf("read parameters: %w", err)
	}

	seeded := parameters.Flatten(doc)
	changes := make([]parameters.Change, 0, len(seeded))
	for _, key := range slices.Sorted(maps.Keys(seeded)) {
		if _, ok := existing[key]; ok && !s.overwrite {
			continue
		}
		changes = append(changes, parameters.Change{Key: key, Value: seeded[key]})
	}

	if len(changes) == 0 {
		return nil
	}
	return store.Apply(ctx, changes...)
}

func (s *ParameterSeeder) loadSeedData() (map[string]any, error) {
	var content []byte
	var err error

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/parameters.toml")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	doc := make(map[string]any)
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return doc, nil
}
