// Command recompute runs the graph precompute pass (similarity layers,
// Louvain communities, betweenness, bridging) standalone, outside the
// HTTP server's POST /recompute endpoint. Grounded on precompute_graph.py's
// argparse surface.
package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"bridgewise-ranker/internal/config"
	"bridgewise-ranker/internal/embedding"
	"bridgewise-ranker/internal/graphstore"
	"bridgewise-ranker/internal/metrics"
	"bridgewise-ranker/internal/vectorstore"
)

func main() {
	var (
		minSharedSkills int
		weightMode      string
		boostCompany    float64
		boostSchool     float64
		exclude         []string
		maxIter         int
		embedTopK       int
		embedScale      float64
	)

	rootCmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild the SIMILAR/SIMILAR_JOB layers and their structural metrics",
		Long: `recompute rebuilds the graph's skills and job-title similarity layers
and recomputes Louvain community, betweenness centrality and bridging
coefficient on both, the same pass the API runs on POST /recompute.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if weightMode != "count" && weightMode != "jaccard" {
				log.Fatalf("--weight-mode must be \"count\" or \"jaccard\", got %q", weightMode)
			}

			cfg := config.Load()
			if cfg.GraphURI == "" {
				log.Fatal("set GRAPH_URI environment variable")
			}

			ctx := context.Background()
			store, err := graphstore.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			engine := metrics.NewEngine(store, maxIter)
			opts := graphstore.RecomputeOptions{
				MinSharedSkills: minSharedSkills,
				WeightMode:      weightMode,
				BoostCompany:    boostCompany,
				BoostSchool:     boostSchool,
				Exclude:         exclude,
				MaxIter:         maxIter,
				EmbedTopK:       embedTopK,
				EmbedScale:      embedScale,
			}

			log.Println("recomputing similarity layers and metrics...")
			if err := engine.RecomputeAll(ctx, opts); err != nil {
				return err
			}

			if embedTopK > 0 {
				vectors, err := vectorstore.New(cfg)
				if err != nil {
					log.Printf("warning: vector store not configured, skipping embedding augmentation: %v", err)
					return nil
				}
				embedder, err := embedding.New(cfg)
				if err != nil {
					log.Printf("warning: embedder not configured, skipping embedding augmentation: %v", err)
					return nil
				}
				if err := augmentWithEmbeddings(ctx, store, vectors, embedder, embedTopK, embedScale); err != nil {
					log.Printf("warning: embedding augmentation failed: %v", err)
				}
			}

			log.Println("recompute complete")
			return nil
		},
	}

	rootCmd.Flags().IntVar(&minSharedSkills, "min-shared-skills", 2, "minimum shared skills for a SIMILAR edge")
	rootCmd.Flags().StringVar(&weightMode, "weight-mode", "count", "edge weight mode: count or jaccard")
	rootCmd.Flags().Float64Var(&boostCompany, "boost-company", 1.0, "additive weight boost for shared company")
	rootCmd.Flags().Float64Var(&boostSchool, "boost-school", 0.5, "additive weight boost for shared school")
	rootCmd.Flags().StringSliceVar(&exclude, "exclude", nil, "person ids to exclude from metrics")
	rootCmd.Flags().IntVar(&maxIter, "max-iter", 20, "max Louvain passes")
	rootCmd.Flags().IntVar(&embedTopK, "embed-top-k", 0, "augment SIMILAR with top-k embedding neighbors per node (0 disables)")
	rootCmd.Flags().Float64Var(&embedScale, "embed-scale", 1.0, "scale factor applied to embedding-derived edge weights")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func augmentWithEmbeddings(ctx context.Context, store *graphstore.Store, vectors *vectorstore.Client, embedder *embedding.Embedder, topK int, scale float64) error {
	ids, err := store.AllPersonIDs(ctx)
	if err != nil {
		return err
	}
	var edges []graphstore.SimilarEdge
	for _, id := range ids {
		matches, err := vectors.QueryByID(ctx, id, topK+1, "")
		if err != nil {
			continue
		}
		for _, m := range matches {
			if m.ID == id {
				continue
			}
			if m.Score <= 0 {
				continue
			}
			edges = append(edges, graphstore.SimilarEdge{A: id, B: m.ID, Weight: m.Score * scale})
		}
	}
	return store.ApplyEmbeddingEdges(ctx, edges)
}
