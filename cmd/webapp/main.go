package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"scriptgen/internal/config"
	"scriptgen/internal/generator"
	"scriptgen/internal/history"
	"scriptgen/internal/llm"
	"scriptgen/internal/scheduler"
	"scriptgen/internal/session"
	"scriptgen/internal/web"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	factory := llm.NewFactory(cfg)
	llmClient, err := factory.CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	gen := generator.NewGenerator(llmClient, generator.NewStore(cfg.GeneratedDir))
	ref := generator.NewRefactorer(llmClient, generator.NewStore(cfg.RefactoredDir))

	if recorder, err := history.NewFileRecorder(cfg.HistoryFilePath); err != nil {
		log.Printf("failed to init history recorder: %v", err)
	} else {
		gen.SetRecorder(recorder)
		ref.SetRecorder(recorder)
	}

	sessions := session.NewManager()

	maxAge := time.Duration(cfg.SessionMaxAgeMins) * time.Minute
	sched := scheduler.New(cfg.CleanupSchedule, func() int {
		return sessions.CleanupExpired(maxAge)
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	server := web.NewServer(sessions, gen, ref, cfg.ArtifactsDir, cfg.WebPort)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("web server failed: %v", err)
		}
	}()

	// Ждем сигнала завершения
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Printf("🛑 Shutting down...")
	if err := server.Stop(); err != nil {
		log.Printf("failed to stop web server: %v", err)
	}
}
