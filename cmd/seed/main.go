package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/system-api/internal/config"
	"github.com/JaimeStill/system-api/internal/infrastructure"
)

func main() {
	var (
		path      = flag.String("config", config.BaseConfigFile, "Configuration file")
		all       = flag.Bool("all", false, "Run all seeders")
		params    = flag.Bool("parameters", false, "Seed parameters")
		file      = flag.String("file", "", "External seed file (overrides embedded)")
		overwrite = flag.Bool("overwrite", false, "Replace existing parameter values")
		list      = flag.Bool("list", false, "List available seeders")
	)
	flag.Parse()

	if *list {
		fmt.Println("Available seeders:")
		for _, s := range listSeeders() {
			fmt.Printf("  - %s: %s\n", s.Name(), s.Description())
		}
		return
	}

	if !*all && !*params {
		fmt.Println("usage: seed [-config <path>] [-all|-parameters] [-file <path>] [-overwrite] [-list]")
		flag.PrintDefaults()
		return
	}

	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if seeder, ok := getSeeder("parameters"); ok {
		ps := seeder.(*ParameterSeeder)
		ps.SetFile(*file)
		ps.SetOverwrite(*overwrite)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	if err := infra.Start(); err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration())

	ctx := context.Background()

	switch {
	case *all:
		if err := runAllSeeders(ctx, infra.Parameters); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("all seeders completed successfully")
	case *params:
		if err := runSeeder(ctx, infra.Parameters, "parameters"); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		fmt.Println("parameters seeded successfully")
	}
}
