package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"checkitsa/ai"
	"checkitsa/config"
	"checkitsa/deal"
	"checkitsa/job"
	"checkitsa/phone"
	"checkitsa/report"
	"checkitsa/scan"
	"checkitsa/search"
	"checkitsa/store"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Search providers, in fallback order.
	var chain search.Chain
	if cfg.SerperKey != "" {
		chain = append(chain, search.NewSerper(cfg.SerperKey))
	}
	if cfg.GoogleCSEKey != "" && cfg.GoogleCSECX != "" {
		chain = append(chain, search.NewGoogleCSE(cfg.GoogleCSEKey, cfg.GoogleCSECX))
	}
	var provider search.Provider
	if len(chain) > 0 {
		provider = chain
	} else {
		log.Println("no search API keys configured; search-backed collectors disabled")
	}

	var aiClient *ai.GeminiClient
	if cfg.GeminiKey != "" {
		aiClient = ai.NewGeminiClient(cfg.GeminiKey)
	}

	// Persistence is optional.
	var st *store.Store
	if cfg.DatabaseURL != "" {
		var err error
		st, err = store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db connect error: %v", err)
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			log.Fatalf("db migrate error: %v", err)
		}
	} else {
		log.Println("DATABASE_URL not set; running without persistence")
	}

	var saver scan.ReportSaver
	var counter phone.ReportCounter
	if st != nil {
		saver = st
		counter = st
	}

	scanner := scan.NewChecker(provider, aiClient)
	phones := phone.NewChecker(provider, counter, aiClient)
	jobs := job.NewChecker(provider, aiClient)
	deals := deal.NewChecker(provider)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	r.Post("/api/scan", scan.Handler(scanner, saver))
	r.Post("/api/verify/phone", phone.Handler(phones))
	r.Post("/api/verify/job", job.Handler(jobs))
	r.Post("/api/pro/deal-check", deal.Handler(deals))
	if st != nil {
		r.Post("/api/reports", report.SubmitHandler(st))
		r.Get("/api/reports/recent", report.RecentHandler(st))
	}

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, r) }()
	log.Printf("checkitsa listening on %s", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutting down on %s", sig)
		cancel()
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.Fatal(fmt.Errorf("server error: %w", err))
	}
}
