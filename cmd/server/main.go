package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	webAdapter "vypaar-saathi/internal/adapters/web"
	"vypaar-saathi/internal/ai"
	"vypaar-saathi/internal/app"
	"vypaar-saathi/internal/core"
	"vypaar-saathi/internal/store"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	kv, cleanup, err := openStore(ctx)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer cleanup()

	db := core.NewDB(kv)
	if err := db.Seed(ctx, time.Now()); err != nil {
		log.Fatalf("seed: %v", err)
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set, insights will use the built-in fallback")
	}
	agent := ai.NewAgent(apiKey, os.Getenv("INSIGHTS_MODEL"))

	storeURL := os.Getenv("STORE_URL")
	if storeURL == "" {
		storeURL = "http://localhost:8080/store"
	}

	svc := app.NewApplicationService(db, agent, storeURL)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// openStore picks the persistence backend: Postgres when DATABASE_URL is
// set, otherwise JSON files under DATA_DIR (default ./data).
func openStore(ctx context.Context) (store.Store, func(), error) {
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := store.NewPool(ctx)
		if err != nil {
			return nil, nil, err
		}
		kv, err := store.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Println("using postgres store")
		return kv, pool.Close, nil
	}

	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	kv, err := store.NewFileStore(dir)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("using file store in %s", dir)
	return kv, func() {}, nil
}
