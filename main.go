package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"invaderdeck/internal/config"
	"invaderdeck/internal/journal"
	"invaderdeck/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	port := flag.Int("port", 0, "server port (overrides listen_addr)")
	journalDir := flag.String("journal", "", "directory for the action journal (overrides journal_dir)")
	flag.Parse()

	logger := log.New(os.Stdout, "[invaderdeck] ", log.LstdFlags|log.Lmicroseconds)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Fatalf("load config: %v", err)
			}
			logger.Printf("config not found (%s); using defaults", *configPath)
			cfg = config.Default()
		}
	}
	if *port != 0 {
		cfg.ListenAddr = fmt.Sprintf(":%d", *port)
	}
	if *journalDir != "" {
		cfg.JournalDir = *journalDir
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	var j *journal.Writer
	if cfg.JournalDir != "" {
		j = journal.NewWriter(cfg.JournalDir, "actions")
		defer func() {
			if err := j.Close(); err != nil {
				logger.Printf("journal close: %v", err)
			}
		}()
		logger.Printf("journaling actions to %s", cfg.JournalDir)
	}

	srv := server.New(cfg, j, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		logger.Fatalf("server error: %v", err)
	}
	<-stopped
}
