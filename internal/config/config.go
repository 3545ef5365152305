// Package config loads the ranking engine's environment-variable surface,
// following the teacher's godotenv-with-fallback pattern.
package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Graph store (Neo4j)
	GraphURI                 string
	GraphUser                string
	GraphPass                string
	GraphConnectRetries      int
	GraphConnectInitialDelay time.Duration
	GraphConnectMaxDelay     time.Duration
	GraphPoolMin             int
	GraphPoolMax             int

	// Vector store (Pinecone-compatible)
	VectorAPIKey    string
	VectorRegion    string
	VectorIndexName string

	// Embedder
	EmbedModel   string
	OpenAIAPIKey string

	// Relational metadata store (out-of-scope collaborator, spec'd only
	// as an interface; lib/pq backs the concrete stub)
	DatabaseURL string

	// Cache
	RedisAddr string

	// Ranking weight overrides
	Weights RankWeights

	// HTTP
	Port string

	// Request timeout budget for external calls
	RequestTimeout time.Duration
}

type RankWeights struct {
	Vec          float64
	Skill        float64
	Job          float64
	StructGlobal float64
	StructEgo    float64
	Company      float64
}

// DefaultWeights mirrors the weight defaults of the /rank-connections
// request body.
func DefaultWeights() RankWeights {
	return RankWeights{Vec: 0.40, Skill: 0.18, Job: 0.14, StructGlobal: 0.14, StructEgo: 0.09, Company: 0.05}
}

func Load() *Config {
	if err := godotenvLoad(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
		log.Println("Attempting to load from parent directory...")
		if err := godotenvLoadFrom("../../.env"); err != nil {
			log.Println("Warning: Could not load .env file, using environment variables")
		}
	}

	return &Config{
		GraphURI:                 os.Getenv("GRAPH_URI"),
		GraphUser:                envOr("GRAPH_USER", "neo4j"),
		GraphPass:                os.Getenv("GRAPH_PASS"),
		GraphConnectRetries:      envInt("GRAPH_CONNECT_RETRIES", 3),
		GraphConnectInitialDelay: envDuration("GRAPH_CONNECT_INITIAL_DELAY", 500*time.Millisecond),
		GraphConnectMaxDelay:     envDuration("GRAPH_CONNECT_MAX_DELAY", 5*time.Second),
		GraphPoolMin:             envInt("GRAPH_POOL_MIN", 1),
		GraphPoolMax:             envInt("GRAPH_POOL_MAX", 10),

		VectorAPIKey:    os.Getenv("VECTOR_API_KEY"),
		VectorRegion:    firstNonEmpty(os.Getenv("VECTOR_REGION"), os.Getenv("VECTOR_ENV")),
		VectorIndexName: os.Getenv("VECTOR_INDEX_NAME"),

		EmbedModel:   envOr("EMBED_MODEL", "text-embedding-3-small"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		Weights: weightsFromEnv(),

		Port:           envOr("PORT", "8080"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 60*time.Second),
	}
}

func weightsFromEnv() RankWeights {
	w := DefaultWeights()
	w.Vec = envFloat("RANK_W_VEC", w.Vec)
	w.Skill = envFloat("RANK_W_SKILL", w.Skill)
	w.Job = envFloat("RANK_W_JOB", w.Job)
	w.StructGlobal = envFloat("RANK_W_STRUCT_GLOBAL", w.StructGlobal)
	w.StructEgo = envFloat("RANK_W_STRUCT_EGO", w.StructEgo)
	w.Company = envFloat("RANK_W_COMPANY", w.Company)
	return w
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
