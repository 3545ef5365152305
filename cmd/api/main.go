package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "bridgewise-ranker/docs" // Swagger docs
	"bridgewise-ranker/internal/api"
	"bridgewise-ranker/internal/cache"
	"bridgewise-ranker/internal/config"
	"bridgewise-ranker/internal/embedding"
	"bridgewise-ranker/internal/graphstore"
	"bridgewise-ranker/internal/vectorstore"
)

// @title Personal Network Connector Ranking API
// @version 1.0
// @description Ranks first-degree connections by usefulness against a free-text query, combining vector similarity, attribute matching, and graph-structural signals.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes https http

func main() {
	cfg := config.Load()

	if cfg.GraphURI == "" {
		log.Fatal("set GRAPH_URI environment variable (e.g. bolt://localhost:7687)")
	}

	log.Println("Connecting to graph store...")
	ctx := context.Background()
	store, err := graphstore.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("graph store connect:", err)
	}
	defer store.Close(ctx)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Printf("Warning: schema ensure failed: %v", err)
	}
	log.Println("Graph store connected successfully!")

	var vectors *vectorstore.Client
	if v, err := vectorstore.New(cfg); err != nil {
		log.Printf("Warning: vector store not configured: %v", err)
	} else {
		vectors = v
	}

	var embedder *embedding.Embedder
	if e, err := embedding.New(cfg); err != nil {
		log.Printf("Warning: embedder not configured: %v", err)
	} else {
		embedder = e
	}

	var cacheStore cache.Store
	if cfg.RedisAddr != "" {
		cacheStore = cache.NewRedisStore(cfg.RedisAddr)
	} else {
		cacheStore = cache.NewMemoryStore()
	}

	apiSrv := api.New(store, vectors, embedder, cacheStore, cfg.Weights)
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("API server listening on :%s\n", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-idleConnsClosed
}
