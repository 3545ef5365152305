package graphstore

import (
	"context"
	"fmt"
)

// LoadLayer returns the node id set and weighted edge list of one
// similarity layer ("SIMILAR" or "SIMILAR_JOB"), excluding any id in
// excludeIDs, for the Metrics Engine's in-process projection. This is
// the Go-native replacement for precompute_graph.py's
// gds.graph.project.cypher call — there is no GDS-equivalent analytics
// library in the ecosystem, so the projection is just data the caller
// runs Louvain/betweenness over in memory.
func (s *Store) LoadLayer(ctx context.Context, relType string, excludeIDs []string) ([]string, []WeightedEdge, error) {
	excluded := map[string]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	idRes, err := s.run(ctx, "MATCH (p:Person) RETURN p.id AS id", nil)
	if err != nil {
		return nil, nil, err
	}
	var nodes []string
	for _, rec := range idRes.Records {
		v, _ := rec.Get("id")
		id, _ := v.(string)
		if id != "" && !excluded[id] {
			nodes = append(nodes, id)
		}
	}

	edgeRes, err := s.run(ctx, fmt.Sprintf(
		`MATCH (p1:Person)-[r:%s]-(p2:Person) WHERE p1.id < p2.id
		 RETURN p1.id AS a, p2.id AS b, coalesce(r.weight, 1.0) AS weight`, relType), nil)
	if err != nil {
		return nil, nil, err
	}
	var edges []WeightedEdge
	for _, rec := range edgeRes.Records {
		av, _ := rec.Get("a")
		bv, _ := rec.Get("b")
		wv, _ := rec.Get("weight")
		a, _ := av.(string)
		b, _ := bv.(string)
		w, _ := wv.(float64)
		if excluded[a] || excluded[b] {
			continue
		}
		edges = append(edges, WeightedEdge{A: a, B: b, Weight: w})
	}
	return nodes, edges, nil
}

// WriteLayerMetrics commits one layer's computed properties in a single
// transaction, so readers never observe a torn mix of pre- and
// post-recompute values within that layer (§5).
func (s *Store) WriteLayerMetrics(ctx context.Context, communityProp, betweennessProp, bridgeCoeffProp, bridgePotentialProp, degreeProp string, rows []LayerMetrics) error {
	params := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		params = append(params, map[string]any{
			"id": r.PersonID, "community": r.Community, "betweenness": r.Betweenness,
			"bridgeCoeff": r.BridgeCoeff, "bridgePotential": r.BridgePotential, "degree": r.Degree,
		})
	}
	q := fmt.Sprintf(`
	UNWIND $rows AS row
	MATCH (p:Person {id: row.id})
	SET p.%s = row.community,
	    p.%s = row.betweenness,
	    p.%s = row.bridgeCoeff,
	    p.%s = row.bridgePotential,
	    p.%s = row.degree`, communityProp, betweennessProp, bridgeCoeffProp, bridgePotentialProp, degreeProp)
	if _, err := s.run(ctx, q, map[string]any{"rows": params}); err != nil {
		return fmt.Errorf("write layer metrics: %w", err)
	}
	return nil
}

// WriteJobTitleCanon sets the canonicalized job-title fields the Title
// Canonicalizer derived for one person.
func (s *Store) WriteJobTitleCanon(ctx context.Context, personID, canon string, tokens []string) error {
	q := `MATCH (p:Person {id: $id}) SET p.jobTitleCanon = $canon, p.jobTitleCanonTokens = $tokens`
	_, err := s.run(ctx, q, map[string]any{"id": personID, "canon": canon, "tokens": tokens})
	return err
}

// RawTitleInput is one person's raw title plus the school date range used
// as a student/unemployed fallback when title is blank.
type RawTitleInput struct {
	ID              string
	Title           string
	SchoolDateRange string
}

// FetchRawTitles returns every person's raw title and most recent school
// date range, the input the Title Canonicalizer runs over.
func (s *Store) FetchRawTitles(ctx context.Context) ([]RawTitleInput, error) {
	res, err := s.run(ctx, `
		MATCH (p:Person)
		RETURN p.id AS id, coalesce(p.title,'') AS title,
		       coalesce(p.raw_linkedinSchoolDateRange,'') AS schoolDateRange`, nil)
	if err != nil {
		return nil, err
	}
	out := make([]RawTitleInput, 0, len(res.Records))
	for _, rec := range res.Records {
		idv, _ := rec.Get("id")
		tv, _ := rec.Get("title")
		sv, _ := rec.Get("schoolDateRange")
		id, _ := idv.(string)
		title, _ := tv.(string)
		sdr, _ := sv.(string)
		if id == "" {
			continue
		}
		out = append(out, RawTitleInput{ID: id, Title: title, SchoolDateRange: sdr})
	}
	return out, nil
}

// FetchAllSkills returns every distinct, lowercased skill name across all
// people — the base vocabulary the Query Parser matches goal_skills
// against.
func (s *Store) FetchAllSkills(ctx context.Context) ([]string, error) {
	res, err := s.run(ctx, `
		MATCH (p:Person)-[:HAS_SKILL]->(sk:Skill)
		RETURN collect(DISTINCT toLower(trim(sk.name))) AS skills`, nil)
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, nil
	}
	v, _ := res.Records[0].Get("skills")
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, x := range raw {
		if str, ok := x.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

// FetchAllCompanies returns every distinct, lowercased company name, for
// the Query Parser's fuzzy company matching.
func (s *Store) FetchAllCompanies(ctx context.Context) ([]string, error) {
	res, err := s.run(ctx, `
		MATCH (c:Company) RETURN collect(DISTINCT toLower(trim(c.name))) AS companies`, nil)
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, nil
	}
	v, _ := res.Records[0].Get("companies")
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, x := range raw {
		if str, ok := x.(string); ok && str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

// FetchCandidates returns every first-degree KNOWS connection of meID,
// enriched with the structural/job fields the ranker needs. excludeIDs
// are dropped from the result set.
func (s *Store) FetchCandidates(ctx context.Context, meID string, excludeIDs []string) ([]Person, error) {
	res, err := s.run(ctx, `
		MATCH (me:Person {id: $meID})-[:KNOWS]-(p:Person)
		WHERE NOT p.id IN $exclude
		OPTIONAL MATCH (p)-[:WORKED_AT]->(c:Company)
		WITH p, collect(DISTINCT c.name) AS workedAt
		RETURN p.id AS id, coalesce(p.name,'') AS name, coalesce(p.title,'') AS title,
		       coalesce(p.company,'') AS company, workedAt AS companies,
		       coalesce(p.skills,[]) AS skills,
		       coalesce(p.jobTitleCanon,'') AS jobTitleCanon,
		       coalesce(p.jobTitleCanonTokens,[]) AS jobTitleCanonTokens,
		       coalesce(p.communitySkills,-1) AS communitySkills,
		       coalesce(p.communityJob,-1) AS communityJob,
		       coalesce(p.betweennessSkills,0.0) AS betweennessSkills,
		       coalesce(p.betweennessJob,0.0) AS betweennessJob,
		       coalesce(p.bridgeCoeffSkills,0.0) AS bridgeCoeffSkills,
		       coalesce(p.bridgeCoeffJob,0.0) AS bridgeCoeffJob,
		       coalesce(p.bridgePotentialSkills,0.0) AS bridgePotentialSkills,
		       coalesce(p.bridgePotentialJob,0.0) AS bridgePotentialJob,
		       coalesce(p.similarDegreeSkills,0) AS similarDegreeSkills,
		       coalesce(p.similarDegreeJob,0) AS similarDegreeJob`,
		map[string]any{"meID": meID, "exclude": toAnySlice(excludeIDs)})
	if err != nil {
		return nil, err
	}
	return recordsToPeople(res)
}

// FetchAllPersons returns every person (minus excludeIDs) with the
// structural fields the whole-graph ranker needs, grounded on app.py's
// plain /rank endpoint (product of vector similarity and bridge
// potential across the whole graph, no KNOWS restriction).
func (s *Store) FetchAllPersons(ctx context.Context, excludeIDs []string) ([]Person, error) {
	res, err := s.run(ctx, `
		MATCH (p:Person)
		WHERE NOT p.id IN $exclude
		OPTIONAL MATCH (p)-[:WORKED_AT]->(c:Company)
		WITH p, collect(DISTINCT c.name) AS workedAt
		RETURN p.id AS id, coalesce(p.name,'') AS name, coalesce(p.title,'') AS title,
		       coalesce(p.company,'') AS company, workedAt AS companies,
		       coalesce(p.skills,[]) AS skills,
		       coalesce(p.jobTitleCanon,'') AS jobTitleCanon,
		       coalesce(p.jobTitleCanonTokens,[]) AS jobTitleCanonTokens,
		       coalesce(p.communitySkills,-1) AS communitySkills,
		       coalesce(p.communityJob,-1) AS communityJob,
		       coalesce(p.betweennessSkills,0.0) AS betweennessSkills,
		       coalesce(p.betweennessJob,0.0) AS betweennessJob,
		       coalesce(p.bridgeCoeffSkills,0.0) AS bridgeCoeffSkills,
		       coalesce(p.bridgeCoeffJob,0.0) AS bridgeCoeffJob,
		       coalesce(p.bridgePotentialSkills,0.0) AS bridgePotentialSkills,
		       coalesce(p.bridgePotentialJob,0.0) AS bridgePotentialJob,
		       coalesce(p.similarDegreeSkills,0) AS similarDegreeSkills,
		       coalesce(p.similarDegreeJob,0) AS similarDegreeJob`,
		map[string]any{"exclude": toAnySlice(excludeIDs)})
	if err != nil {
		return nil, err
	}
	return recordsToPeople(res)
}

// EgoNetworkKnows returns the deduplicated KNOWS adjacency of meID's
// first-degree contacts, for the ranker's struct_ego bridging-coefficient
// computation (computed per-query, never persisted, per §4.3).
func (s *Store) EgoNetworkKnows(ctx context.Context, meID string) (map[string][]string, error) {
	res, err := s.run(ctx, `
		MATCH (me:Person {id:$meID})-[:KNOWS]-(p:Person)
		WITH collect(DISTINCT p.id) AS egoIDs
		MATCH (a:Person)-[:KNOWS]-(b:Person)
		WHERE a.id IN egoIDs AND b.id IN egoIDs AND a.id < b.id
		RETURN a.id AS a, b.id AS b`, map[string]any{"meID": meID})
	if err != nil {
		return nil, err
	}
	adj := map[string][]string{}
	seen := map[[2]string]bool{}
	for _, rec := range res.Records {
		av, _ := rec.Get("a")
		bv, _ := rec.Get("b")
		a, _ := av.(string)
		b, _ := bv.(string)
		key := [2]string{a, b}
		if seen[key] {
			continue
		}
		seen[key] = true
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	return adj, nil
}

// KnowsEdgesAmong returns every KNOWS edge whose both endpoints are in
// ids, for the /rank-connections/graph subgraph response.
func (s *Store) KnowsEdgesAmong(ctx context.Context, ids []string) ([][2]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	res, err := s.run(ctx, `
		MATCH (a:Person)-[:KNOWS]-(b:Person)
		WHERE a.id IN $ids AND b.id IN $ids AND a.id < b.id
		RETURN DISTINCT a.id AS a, b.id AS b`, map[string]any{"ids": toAnySlice(ids)})
	if err != nil {
		return nil, err
	}
	out := make([][2]string, 0, len(res.Records))
	for _, rec := range res.Records {
		av, _ := rec.Get("a")
		bv, _ := rec.Get("b")
		a, _ := av.(string)
		b, _ := bv.(string)
		out = append(out, [2]string{a, b})
	}
	return out, nil
}

// FirstDegreeNeighbors returns up to limit of meID's direct KNOWS
// neighbor ids, for the /rank-connections/graph degraded fallback.
func (s *Store) FirstDegreeNeighbors(ctx context.Context, meID string, limit int) ([]Person, error) {
	res, err := s.run(ctx, `
		MATCH (me:Person {id:$meID})-[:KNOWS]-(p:Person)
		RETURN p.id AS id, coalesce(p.name,'') AS name, coalesce(p.title,'') AS title
		LIMIT $limit`, map[string]any{"meID": meID, "limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]Person, 0, len(res.Records))
	for _, rec := range res.Records {
		idv, _ := rec.Get("id")
		nv, _ := rec.Get("name")
		tv, _ := rec.Get("title")
		id, _ := idv.(string)
		name, _ := nv.(string)
		title, _ := tv.(string)
		out = append(out, Person{ID: id, Name: name, Title: title})
	}
	return out, nil
}

// GetPerson fetches one person by id.
func (s *Store) GetPerson(ctx context.Context, id string) (*Person, error) {
	res, err := s.run(ctx, `
		MATCH (p:Person {id:$id})
		RETURN p.id AS id, coalesce(p.name,'') AS name, coalesce(p.title,'') AS title,
		       coalesce(p.company,'') AS company, coalesce(p.skills,[]) AS skills,
		       coalesce(p.jobTitleCanon,'') AS jobTitleCanon,
		       coalesce(p.jobTitleCanonTokens,[]) AS jobTitleCanonTokens,
		       coalesce(p.communitySkills,-1) AS communitySkills,
		       coalesce(p.communityJob,-1) AS communityJob,
		       coalesce(p.betweennessSkills,0.0) AS betweennessSkills,
		       coalesce(p.betweennessJob,0.0) AS betweennessJob,
		       coalesce(p.bridgeCoeffSkills,0.0) AS bridgeCoeffSkills,
		       coalesce(p.bridgeCoeffJob,0.0) AS bridgeCoeffJob,
		       coalesce(p.bridgePotentialSkills,0.0) AS bridgePotentialSkills,
		       coalesce(p.bridgePotentialJob,0.0) AS bridgePotentialJob,
		       coalesce(p.similarDegreeSkills,0) AS similarDegreeSkills,
		       coalesce(p.similarDegreeJob,0) AS similarDegreeJob`,
		map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	people, err := recordsToPeople(res)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return nil, nil
	}
	return &people[0], nil
}

// ShortestKnowsPath returns the person ids of a shortest KNOWS path up to
// maxDepth hops, or a nil slice if none exists (§4.6 /intro-path).
func (s *Store) ShortestKnowsPath(ctx context.Context, src, dst string, maxDepth int) ([]string, int, error) {
	q := fmt.Sprintf(`
		MATCH (a:Person {id:$src}), (b:Person {id:$dst})
		MATCH path = shortestPath((a)-[:KNOWS*..%d]-(b))
		RETURN [n IN nodes(path) | n.id] AS nodeIds, length(path) AS hops`, maxDepth)
	res, err := s.run(ctx, q, map[string]any{"src": src, "dst": dst})
	if err != nil {
		return nil, 0, err
	}
	if len(res.Records) == 0 {
		return nil, 0, nil
	}
	nv, _ := res.Records[0].Get("nodeIds")
	hv, _ := res.Records[0].Get("hops")
	raw, _ := nv.([]any)
	ids := make([]string, 0, len(raw))
	for _, x := range raw {
		if str, ok := x.(string); ok {
			ids = append(ids, str)
		}
	}
	hops, _ := hv.(int64)
	return ids, int(hops), nil
}

// Clusters returns /clusters: community id + size, skills layer.
func (s *Store) Clusters(ctx context.Context) ([]ClusterSummary, error) {
	res, err := s.run(ctx, `
		MATCH (p:Person) RETURN p.communitySkills AS comm, count(*) AS size
		ORDER BY size DESC`, nil)
	if err != nil {
		return nil, err
	}
	out := make([]ClusterSummary, 0, len(res.Records))
	for _, rec := range res.Records {
		cv, _ := rec.Get("comm")
		sv, _ := rec.Get("size")
		c, _ := cv.(int64)
		sz, _ := sv.(int64)
		out = append(out, ClusterSummary{Community: c, Size: sz})
	}
	return out, nil
}

// ClusterSummaries returns /clusters/summary: per-community top skills
// and top titles, grounded on api.py's pure-Cypher frequency ranking
// (no APOC dependency).
func (s *Store) ClusterSummaries(ctx context.Context, topN int) ([]ClusterDetail, error) {
	q := `
	MATCH (p:Person)
	WITH p.communitySkills AS comm, collect(p) AS members
	WITH comm, members, size(members) AS size
	UNWIND members AS m
	UNWIND m.skills AS sskill
	WITH comm, size, toLower(sskill) AS skill
	WHERE skill IS NOT NULL AND skill <> ''
	WITH comm, size, skill, count(*) AS sc
	ORDER BY comm, sc DESC, skill
	WITH comm, size, collect(skill)[0..$topN] AS topSkills
	MATCH (m2:Person {communitySkills: comm})
	WITH comm, size, topSkills, toLower(coalesce(m2.title,'')) AS rawTitle
	WHERE rawTitle IS NOT NULL AND trim(rawTitle) <> ''
	WITH comm, size, topSkills, rawTitle, count(*) AS tc
	ORDER BY comm, tc DESC, rawTitle
	WITH comm, size, topSkills, collect(rawTitle)[0..$topN] AS topTitles
	RETURN comm AS community, size, topSkills, topTitles
	ORDER BY size DESC`
	res, err := s.run(ctx, q, map[string]any{"topN": topN})
	if err != nil {
		return nil, err
	}
	out := make([]ClusterDetail, 0, len(res.Records))
	for _, rec := range res.Records {
		cv, _ := rec.Get("community")
		sv, _ := rec.Get("size")
		tsv, _ := rec.Get("topSkills")
		ttv, _ := rec.Get("topTitles")
		c, _ := cv.(int64)
		sz, _ := sv.(int64)
		out = append(out, ClusterDetail{
			Community: c, Size: sz,
			TopSkills: toStringSlice(tsv), TopTitles: toStringSlice(ttv),
		})
	}
	return out, nil
}

// ClusterMembers returns /clusters/{cid}: members of one skills-layer
// community ordered by bridge potential.
func (s *Store) ClusterMembers(ctx context.Context, communityID int64, limit int) ([]ClusterMember, error) {
	q := `
	MATCH (p:Person {communitySkills:$c})
	RETURN p.id AS id, coalesce(p.name,'') AS name, coalesce(p.title,'') AS title,
	       coalesce(p.company,'') AS company, coalesce(p.bridgePotentialSkills,0.0) AS bridgePotential
	ORDER BY bridgePotential DESC LIMIT $limit`
	res, err := s.run(ctx, q, map[string]any{"c": communityID, "limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]ClusterMember, 0, len(res.Records))
	for _, rec := range res.Records {
		idv, _ := rec.Get("id")
		nv, _ := rec.Get("name")
		tv, _ := rec.Get("title")
		cv, _ := rec.Get("company")
		bv, _ := rec.Get("bridgePotential")
		id, _ := idv.(string)
		name, _ := nv.(string)
		title, _ := tv.(string)
		company, _ := cv.(string)
		bp, _ := bv.(float64)
		out = append(out, ClusterMember{ID: id, Name: name, Title: title, Company: company, BridgePotential: bp})
	}
	return out, nil
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func toStringSlice(v any) []string {
	raw, _ := v.([]any)
	out := make([]string, 0, len(raw))
	for _, x := range raw {
		if s, ok := x.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
