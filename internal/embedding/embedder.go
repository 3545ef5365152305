// Package embedding wraps text embedding generation. It replaces the
// teacher's hand-rolled net/http OpenAI calls (internal/graphrag/
// embeddings.go) with github.com/sashabaranov/go-openai, which the wider
// example corpus uses for the same purpose — the teacher only hand-rolled
// it because its own go.mod never picked up an SDK.
package embedding

import (
	"context"
	"fmt"
	"time"

	"bridgewise-ranker/internal/apperr"
	"bridgewise-ranker/internal/config"

	openai "github.com/sashabaranov/go-openai"
)

type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func New(cfg *config.Config) (*Embedder, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY must be set", apperr.ErrConfigMissing)
	}
	return &Embedder{
		client: openai.NewClient(cfg.OpenAIAPIKey),
		model:  openai.EmbeddingModel(cfg.EmbedModel),
	}, nil
}

// Embed generates a single embedding, used for the query-time vec(p)
// component of the ranker.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrEmbedFailure, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", apperr.ErrEmbedFailure)
	}
	return resp.Data[0].Embedding, nil
}

// EmbedBatch embeds many texts in one request, rate-limited the same way
// the teacher's BatchEmbedAllNodes throttled sequential calls, here
// batched instead since the OpenAI embeddings endpoint accepts multiple
// inputs per call.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	const batchSize = 96
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: texts[start:end],
			Model: e.model,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrEmbedFailure, err)
		}
		for _, d := range resp.Data {
			out = append(out, d.Embedding)
		}
		if end < len(texts) {
			time.Sleep(200 * time.Millisecond)
		}
	}
	return out, nil
}
