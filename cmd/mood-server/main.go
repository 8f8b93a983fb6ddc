package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/quietcheck/mood-server/internal/api"
	"github.com/quietcheck/mood-server/internal/config"
	"github.com/quietcheck/mood-server/internal/llm"
	"github.com/quietcheck/mood-server/internal/scheduler"
	"github.com/quietcheck/mood-server/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting mood-server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Open the store
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// Create the narrative client
	llmClient := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIBase, cfg.OpenAIModel)
	if llmClient.Configured() {
		log.Printf("Narrative client configured: model %s", cfg.OpenAIModel)
	} else {
		log.Println("WARNING: OPENAI_API_KEY not set; narrative endpoints will serve empty results")
	}

	// Create handlers and router
	handlers := api.NewHandlers(cfg, st, llmClient, clockwork.NewRealClock())
	router := api.NewRouter(cfg, handlers)

	// Create and start scheduler
	sched, err := scheduler.New(st, llmClient, handlers, cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	// Start server
	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down gracefully...")

	// Give ongoing requests 10 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Stopping scheduler...")
	if err := sched.Stop(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}

	log.Println("Closing store...")
	if err := st.Close(); err != nil {
		log.Printf("Store close error: %v", err)
	}

	log.Println("Shutdown complete")
}
