package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rahul/tripsmith/internal/gateway"
	"github.com/rahul/tripsmith/internal/governance"
	"github.com/rahul/tripsmith/internal/observability"
	"github.com/rahul/tripsmith/internal/planner"
	"github.com/rahul/tripsmith/internal/server"
	"github.com/rahul/tripsmith/internal/store"
	"github.com/rahul/tripsmith/internal/tools"
	"github.com/rahul/tripsmith/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

func main() {
	observability.PrintBanner()
	observability.InitializeTerminal()

	// Route all log output through the terminal mutex so it never
	// interrupts the dashboard's cursor save/restore sequence.
	log.SetOutput(observability.NewTermWriter())

	cfg := config.LoadConfig("config.json")

	logger := observability.NewLogger()

	// Plan store
	plans, err := store.NewPlanStore(cfg.Memory.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer plans.Close()

	// Enrichment lookups
	searchLookup, err := tools.NewSearchLookup(cfg.Enrichment.SerpAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize search lookup: %v", err)
	}
	weatherLookup := tools.NewWeatherLookup(cfg.Enrichment.OpenWeatherKey)

	prompts := planner.NewPromptManager(cfg.App.PromptsDir)

	// Goal admission policy
	gov := governance.NewDefaultPolicyEngine()

	// Initialize LLM (using default enabled provider)
	pName, pCfg := cfg.GetDefaultProvider()
	if pName == "" {
		log.Fatal("No enabled provider found in config")
	}

	var llm llms.Model
	switch pName {
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(pCfg.APIKey),
			openai.WithModel(pCfg.Model),
		}
		if pCfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(pCfg.BaseURL))
		}
		llm, err = openai.New(opts...)
	default:
		log.Fatalf("Provider %s not yet implemented in main", pName)
	}

	if err != nil {
		log.Fatal(err)
	}

	p := planner.NewPlanner(llm, weatherLookup, searchLookup, prompts, logger)
	if cfg.Enrichment.Guide {
		p.Guide = tools.NewGuideLookup()
	}

	service := planner.NewService(p, plans, gov, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start HTTP API
	if cfg.Server.Enabled {
		srv := server.New(service, plans, logger, cfg.Server.Addr)
		go func() {
			log.Printf("HTTP API listening on %s", cfg.Server.Addr)
			if err := srv.ListenAndServe(ctx); err != nil {
				log.Printf("\033[91m[ FAIL ] SERVER CRITICAL ERROR: %v\033[0m", err)
				stop()
			}
		}()
	}

	// Start chat gateways
	if tgCfg, ok := cfg.GetTelegramConfig(); ok {
		tg, err := gateway.NewTelegramGateway(tgCfg.Token, service)
		if err != nil {
			log.Fatal(err)
		}
		go func() {
			if err := tg.Start(); err != nil {
				log.Printf("\033[91m[ FAIL ] TELEGRAM GATEWAY ERROR: %v\033[0m", err)
			}
		}()
		defer tg.Stop()
	}

	if dcCfg, ok := cfg.GetDiscordConfig(); ok {
		dc, err := gateway.NewDiscordGateway(dcCfg.Token, service)
		if err != nil {
			log.Fatal(err)
		}
		go func() {
			if err := dc.Start(); err != nil {
				log.Printf("\033[91m[ FAIL ] DISCORD GATEWAY ERROR: %v\033[0m", err)
			}
		}()
		defer dc.Stop()
	}

	// Start Live Resource Dashboard (1-second updates)
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.PrintLiveStatus()
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				observability.Heartbeat()
				logger.LogHeartbeat()
			}
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	// Reset terminal aesthetics
	observability.CleanupTerminal()

	// Give a short time for final logs/syncs
	time.Sleep(500 * time.Millisecond)
	log.Println("\033[95m[ EXIT ] PLANNER DE-INITIALIZED. GOODBYE.\033[0m")
}
