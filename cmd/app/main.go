// Command app serves the AstroInsight HTTP and WebSocket API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"AstroInsight/internal/di"
	"AstroInsight/pkg/config"
	"AstroInsight/pkg/server"
)

func main() {
	defaultConfig := "config/config.yaml"
	if v := os.Getenv("ASTRO_CONFIG"); v != "" {
		defaultConfig = v
	}
	configPath := flag.String("config", defaultConfig, "config file path; empty uses defaults (env ASTRO_CONFIG)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("astroinsight", server.Version)
		return
	}

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("astroinsight %s env=%s ephemeris=%s port=%d",
		server.Version, cfg.Environment, cfg.Ephemeris.Backend, cfg.Server.Port)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	// blocks until SIGINT or SIGTERM
	if err := app.Run(); err != nil {
		log.Printf("astroinsight stopped with error: %v", err)
		os.Exit(1)
	}
}
