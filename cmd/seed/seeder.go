// Package main provides the seed command for populating the parameter store
// with initial data. Seeders write through the configured store, so the
// same command serves the file and database backends.
package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JaimeStill/system-api/internal/parameters"
)

// Seeder defines the interface for parameter seeders.
type Seeder interface {
	// Name returns the unique identifier for this seeder.
	Name() string

	// Description returns a human-readable description of what this seeder does.
	Description() string

	// Seed writes the seeder's data to store.
	Seed(ctx context.Context, store parameters.Store) error
}

var seeders = map[string]Seeder{}

// registerSeeder adds a seeder to the global registry.
// Seeders self-register via init() functions.
func registerSeeder(s Seeder) {
	seeders[s.Name()] = s
}

func getSeeder(name string) (Seeder, bool) {
	s, ok := seeders[name]
	return s, ok
}

// listSeeders returns all registered seeders ordered by name.
func listSeeders() []Seeder {
	result := make([]Seeder, 0, len(seeders))
	for _, s := range seeders {
		result = append(result, s)
	}
	slices.SortFunc(result, func(a, b Seeder) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// runSeeder executes a single seeder by name.
func runSeeder(ctx context.Context, store parameters.Store, name string) error {
	seeder, ok := getSeeder(name)
	if !ok {
		return fmt.Errorf("seeder not found: %s", name)
	}

	if err := seeder.Seed(ctx, store); err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	return nil
}

// runAllSeeders executes all registered seeders in name order.
func runAllSeeders(ctx context.Context, store parameters.Store) error {
	for _, seeder := range listSeeders() {
		if err := seeder.Seed(ctx, store); err != nil {
			return fmt.Errorf("seed %s: %w", seeder.Name(), err)
		}
	}
	return nil
}
