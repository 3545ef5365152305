package graphstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"bridgewise-ranker/internal/apperr"
	"bridgewise-ranker/internal/config"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Store wraps a neo4j driver whose connection pool is capped at
// GraphPoolMax (default 10); no minimum pool size is configured
// (GraphPoolMin is not applied). It retries the initial connectivity check with
// exponential backoff, mirroring how the teacher's storage layer tuned
// its lib/pq connection pool in internal/storage/db.go.
type Store struct {
	driver neo4j.DriverWithContext
}

func Connect(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.GraphURI == "" || cfg.GraphPass == "" {
		return nil, fmt.Errorf("%w: GRAPH_URI and GRAPH_PASS must be set", apperr.ErrConfigMissing)
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.GraphURI,
		neo4j.BasicAuth(cfg.GraphUser, cfg.GraphPass, ""),
		func(c *neo4j.Config) {
			c.MaxConnectionPoolSize = cfg.GraphPoolMax
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}

	delay := cfg.GraphConnectInitialDelay
	var lastErr error
	for attempt := 0; attempt <= cfg.GraphConnectRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[GraphStore] connectivity check retry %d/%d after %v", attempt, cfg.GraphConnectRetries, delay)
			time.Sleep(delay)
			if delay < cfg.GraphConnectMaxDelay {
				delay *= 2
				if delay > cfg.GraphConnectMaxDelay {
					delay = cfg.GraphConnectMaxDelay
				}
			}
		}
		if lastErr = driver.VerifyConnectivity(ctx); lastErr == nil {
			return &Store{driver: driver}, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, lastErr)
}

func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		"CREATE INDEX person_id IF NOT EXISTS FOR (p:Person) ON (p.id)",
		"CREATE INDEX title_name IF NOT EXISTS FOR (t:Title) ON (t.name)",
		"CREATE INDEX title_canon IF NOT EXISTS FOR (t:Title) ON (t.canon)",
		"CREATE INDEX person_jobTitleCanon IF NOT EXISTS FOR (p:Person) ON (p.jobTitleCanon)",
	}
	for _, stmt := range stmts {
		if _, err := neo4j.ExecuteQuery(ctx, s.driver, stmt, nil, neo4j.EagerResultTransformer); err != nil {
			return fmt.Errorf("%w: ensure schema: %v", apperr.ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (s *Store) run(ctx context.Context, cypher string, params map[string]any) (*neo4j.EagerResult, error) {
	res, err := neo4j.ExecuteQuery(ctx, s.driver, cypher, params, neo4j.EagerResultTransformer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
	}
	return res, nil
}
