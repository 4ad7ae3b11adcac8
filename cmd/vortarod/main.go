package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sagerenn/vortaro/internal/config"
	"github.com/sagerenn/vortaro/internal/dict/loader"
	"github.com/sagerenn/vortaro/internal/dict/registry"
	"github.com/sagerenn/vortaro/internal/httpx"
	"github.com/sagerenn/vortaro/internal/observability"
	"github.com/sagerenn/vortaro/internal/service"
)

func main() {
	cfgPath := flag.String("config", "", "path to YAML or JSON config (environment only when empty)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal("config", err)
	}

	log := observability.New(cfg.Log.Level)
	loadRes := loader.LoadAll(cfg.AllSources())
	for _, e := range loadRes.Errs {
		log.Error("source load error", "error", e)
	}
	if len(loadRes.Sources) == 0 {
		log.Error("no source loaded")
		os.Exit(1)
	}
	for _, s := range loadRes.Sources {
		log.Info("source loaded", "id", s.ID(), "type", s.Type(), "entries", len(s.Entries()))
		log.LogSkipped(s.ID(), s.Skipped())
		observability.RecordSource(s.ID(), len(s.Entries()), len(s.Skipped()))
	}

	reg := registry.New()
	if err := reg.MustAddAll(loadRes.Sources); err != nil {
		fatal("registry", err)
	}

	svc := service.New(reg, service.Options{
		Fold:         !cfg.Search.DisableFolding,
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		CacheSize:    cfg.Search.CacheSize,
		CacheTTL:     cfg.Search.CacheTTL,
		MemoSize:     cfg.Analysis.MemoSize,
	})
	st := svc.Stats()
	log.Info("index built", "entries", st.Entries, "eo_words", st.EoWords, "en_words", st.EnWords)
	if cfg.Analysis.Warm {
		n := svc.Warm(cfg.Analysis.WarmWorkers)
		log.Info("analyses warmed", "count", n)
	}

	h := httpx.NewRouter(svc, log, cfg.Server.BasePath, cfg.CORS.Origins())

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server listening", "addr", cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("server stopped")
}

func fatal(stage string, err error) {
	_, _ = os.Stderr.WriteString(stage + ": " + err.Error() + "\n")
	os.Exit(1)
}
