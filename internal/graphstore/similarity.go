package graphstore

import (
	"context"
	"fmt"

	"bridgewise-ranker/internal/apperr"
)

// RebuildSimilar deletes and rebuilds the entire SIMILAR layer, grounded
// on similarity_builder.py's build_similar_edges: a shared-skill base
// pass (count or Jaccard weighted), then company and school boosts.
func (s *Store) RebuildSimilar(ctx context.Context, minSharedSkills int, weightMode string, boostCompany, boostSchool float64) error {
	if _, err := s.run(ctx, "MATCH ()-[r:SIMILAR]-() DELETE r", nil); err != nil {
		return err
	}

	var base string
	if weightMode == "jaccard" {
		base = `
		MATCH (p1:Person)-[:HAS_SKILL]->(s:Skill)<-[:HAS_SKILL]-(p2:Person)
		WHERE p1.id < p2.id
		WITH p1, p2, count(s) AS shared
		WHERE shared >= $minShared
		MATCH (p1)-[:HAS_SKILL]->(s1:Skill)
		WITH p1, p2, shared, collect(DISTINCT s1.name) AS s1Skills
		MATCH (p2)-[:HAS_SKILL]->(s2:Skill)
		WITH p1, p2, shared, s1Skills, collect(DISTINCT s2.name) AS s2Skills
		WITH p1, p2, shared, size(s1Skills) AS a, size(s2Skills) AS b,
		     size([x IN s1Skills WHERE x IN s2Skills]) AS inter
		WITH p1, p2, shared, (a + b - inter) AS unionSize
		WITH p1, p2, shared, CASE WHEN unionSize = 0 THEN 0.0 ELSE toFloat(shared)/unionSize END AS jaccard
		MERGE (p1)-[r:SIMILAR]->(p2)
		SET r.weight = jaccard, r.sharedSkills = shared, r.jaccard = jaccard`
	} else {
		base = `
		MATCH (p1:Person)-[:HAS_SKILL]->(s:Skill)<-[:HAS_SKILL]-(p2:Person)
		WHERE p1.id < p2.id
		WITH p1, p2, count(s) AS shared
		WHERE shared >= $minShared
		MERGE (p1)-[r:SIMILAR]->(p2)
		SET r.weight = toFloat(shared), r.sharedSkills = shared`
	}
	if _, err := s.run(ctx, base, map[string]any{"minShared": minSharedSkills}); err != nil {
		return fmt.Errorf("rebuild similar (base): %w", err)
	}

	if boostCompany > 0 {
		q := `
		MATCH (p1:Person)-[:WORKED_AT]->(c:Company)<-[:WORKED_AT]-(p2:Person)
		WHERE p1.id < p2.id
		MERGE (p1)-[r:SIMILAR]->(p2)
		SET r.weight = coalesce(r.weight,0) + $b`
		if _, err := s.run(ctx, q, map[string]any{"b": boostCompany}); err != nil {
			return fmt.Errorf("rebuild similar (company boost): %w", err)
		}
	}
	if boostSchool > 0 {
		q := `
		MATCH (p1:Person)-[:ATTENDED]->(u:School)<-[:ATTENDED]-(p2:Person)
		WHERE p1.id < p2.id
		MERGE (p1)-[r:SIMILAR]->(p2)
		SET r.weight = coalesce(r.weight,0) + $b`
		if _, err := s.run(ctx, q, map[string]any{"b": boostSchool}); err != nil {
			return fmt.Errorf("rebuild similar (school boost): %w", err)
		}
	}
	return nil
}

// RebuildSimilarJob deletes and rebuilds the SIMILAR_JOB layer, grounded
// on precompute_graph.py's build_similar_job_edges_grouped: every pair
// sharing a non-empty jobTitleCanon gets one flat-weight edge.
func (s *Store) RebuildSimilarJob(ctx context.Context, weight float64) error {
	if _, err := s.run(ctx, "MATCH ()-[r:SIMILAR_JOB]-() DELETE r", nil); err != nil {
		return err
	}
	q := `
	MATCH (p1:Person),(p2:Person)
	WHERE p1.jobTitleCanon IS NOT NULL AND trim(p1.jobTitleCanon) <> ''
	  AND p2.jobTitleCanon = p1.jobTitleCanon
	  AND p1.id < p2.id
	MERGE (p1)-[r:SIMILAR_JOB]-(p2)
	SET r.weight = $w`
	if _, err := s.run(ctx, q, map[string]any{"w": weight}); err != nil {
		return fmt.Errorf("rebuild similar_job: %w", err)
	}
	return nil
}

// ApplyEmbeddingEdges adds scale*score onto the SIMILAR edge of every
// (a,b) pair surfaced by a vector-store kNN query, grounded on
// similarity_builder.py's augment_with_embedding_edges. Edges are
// canonically oriented (a<b) before the merge. Per-pair failures are the
// caller's concern — this only applies the already-computed weights.
func (s *Store) ApplyEmbeddingEdges(ctx context.Context, edges []SimilarEdge) error {
	if len(edges) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(edges))
	for _, e := range edges {
		a, b := e.A, e.B
		if a > b {
			a, b = b, a
		}
		rows = append(rows, map[string]any{"a": a, "b": b, "w": e.Weight})
	}
	q := `
	UNWIND $edges AS e
	MATCH (p1:Person {id: e.a}), (p2:Person {id: e.b})
	MERGE (p1)-[r:SIMILAR]->(p2)
	SET r.weight = coalesce(r.weight,0) + e.w`
	if _, err := s.run(ctx, q, map[string]any{"edges": rows}); err != nil {
		return fmt.Errorf("%w: apply embedding edges: %v", apperr.ErrTransient, err)
	}
	return nil
}

// AllPersonIDs returns every :Person id, used to drive the per-node kNN
// embedding augmentation pass.
func (s *Store) AllPersonIDs(ctx context.Context) ([]string, error) {
	res, err := s.run(ctx, "MATCH (p:Person) RETURN p.id AS id", nil)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		v, _ := rec.Get("id")
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// BootstrapCompanyAndSchool derives WORKED_AT/ATTENDED edges from raw
// ingestion fields when present, grounded on precompute_graph.py's
// build_company_and_school. When the raw_* fields are absent on every
// Person, both statements match nothing and it returns nil.
func (s *Store) BootstrapCompanyAndSchool(ctx context.Context) error {
	company := `
	MATCH (p:Person)
	WITH p, p.raw_previousCompanyName AS prev
	WHERE prev IS NOT NULL AND prev <> ''
	MERGE (c:Company {name: prev})
	MERGE (p)-[:WORKED_AT]->(c)`
	school := `
	MATCH (p:Person)
	WITH p, p.raw_linkedinSchoolName AS cur, p.raw_linkedinPreviousSchoolName AS prev
	WITH p, [x IN [cur, prev] WHERE x IS NOT NULL AND x <> ''] AS schools
	UNWIND schools AS sName
	MERGE (u:School {name: sName})
	MERGE (p)-[:ATTENDED]->(u)`
	if _, err := s.run(ctx, company, nil); err != nil {
		return fmt.Errorf("bootstrap company: %w", err)
	}
	if _, err := s.run(ctx, school, nil); err != nil {
		return fmt.Errorf("bootstrap school: %w", err)
	}
	return nil
}
