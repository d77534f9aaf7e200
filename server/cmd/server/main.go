package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/kaboomer-mp/server/core"
	"github.com/automoto/kaboomer-mp/shared/protocol"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (overrides config)")
	name := flag.String("name", "", "Server display name (overrides config)")
	arena := flag.String("arena", "", "Arena to run (overrides config)")
	flag.Parse()

	config := core.DefaultConfig()
	if *configPath != "" {
		loaded, err := core.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		config = loaded
	}
	if *port != 0 {
		config.Port = *port
	}
	if *tickRate != 0 {
		config.TickRate = *tickRate
	}
	if *name != "" {
		config.Name = *name
	}
	if *arena != "" {
		config.Arena = *arena
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	server, err := core.NewServer(config)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	var registration *core.Registration
	if config.Master.URL != "" {
		registration = core.NewRegistration(config, server)
		registration.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		if registration != nil {
			registration.Stop()
		}
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting Kaboomer server %q on port %d (tick rate: %d/s, arena: %s)",
		config.Name, config.Port, config.TickRate, config.Arena)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
