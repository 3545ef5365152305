// Package ranker scores me's first-degree connections against a
// free-text query by combining vector similarity, attribute Jaccard, and
// the structural signals the Metrics Engine wrote, grounded on
// original_source/graph-processor-api/app.py's /rank-connections*
// handlers and rank_my_connections.py.
package ranker

import (
	"context"
	"math"
	"sort"
	"strings"

	"bridgewise-ranker/internal/config"
	"bridgewise-ranker/internal/embedding"
	"bridgewise-ranker/internal/graphstore"
	"bridgewise-ranker/internal/query"
	"bridgewise-ranker/internal/vectorstore"
)

// Components is the per-candidate score breakdown returned alongside
// each ranked person.
type Components struct {
	VecSim       float64 `json:"vec_sim"`
	SkillMatch   float64 `json:"skill_match"`
	JobMatch     float64 `json:"job_match"`
	StructGlobal float64 `json:"struct_global"`
	StructEgo    float64 `json:"struct_ego"`
	CompanyMatch float64 `json:"company_match"`
}

// RankedPerson is one scored candidate.
type RankedPerson struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Title      string     `json:"title"`
	Score      float64    `json:"score"`
	Components Components `json:"components"`
}

// Request carries the rank-connections contract, defaults applied by the
// caller (HTTP layer) before this is built.
type Request struct {
	MeID          string
	Query         string
	TopK          int
	PineconeTopK  int
	Prefilter     bool
	Weights       config.RankWeights
	RescaleTop    float64
	Debug         bool
}

// ExplainResult is the /rank-connections/explain response: parsed goals
// and a sample of candidates, no scoring.
type ExplainResult struct {
	GoalSkills      []string `json:"goal_skills"`
	GoalJobTokens   []string `json:"goal_job_tokens"`
	GoalCompanies   []string `json:"goal_companies"`
	CandidateCount  int      `json:"candidate_count"`
	CandidateSample []string `json:"candidate_sample"`
}

// Ranker wires the graph store, vector store, and embedder together to
// answer rank requests.
type Ranker struct {
	store    *graphstore.Store
	vectors  *vectorstore.Client
	embedder *embedding.Embedder
}

func New(store *graphstore.Store, vectors *vectorstore.Client, embedder *embedding.Embedder) *Ranker {
	return &Ranker{store: store, vectors: vectors, embedder: embedder}
}

// Rank implements the /rank-connections contract: score(p) = α·vec(p) +
// β·skill(p) + γ·job(p) + δ·struct_global(p) + ε·struct_ego(p) +
// ζ·company(p), over the candidate set of me's KNOWS neighbors.
func (r *Ranker) Rank(ctx context.Context, req Request) ([]RankedPerson, error) {
	candidates, parsed, _, err := r.loadCandidatesAndGoals(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	vecScores, err := r.vecScores(ctx, req.Query, req.PineconeTopK, candidates)
	if err != nil {
		return nil, err
	}

	egoCoeff, err := r.structEgoCoefficients(ctx, req.MeID, candidates)
	if err != nil {
		return nil, err
	}

	structGlobalRaw := make([]float64, len(candidates))
	for i, c := range candidates {
		structGlobalRaw[i] = c.BridgePotentialSkills + c.BridgePotentialJob
	}
	structGlobal := minMaxNormalize(structGlobalRaw)
	structEgo := minMaxNormalize(egoCoeff)

	out := make([]RankedPerson, len(candidates))
	for i, c := range candidates {
		comp := Components{
			VecSim:       round2(vecScores[c.ID]),
			SkillMatch:   round2(jaccard(lowerAll(parsed.GoalSkills), lowerAll(c.Skills))),
			JobMatch:     round2(jaccard(parsed.GoalJobTokens, expandJobTokens(c.JobTitleCanonTokens))),
			StructGlobal: round2(structGlobal[i]),
			StructEgo:    round2(structEgo[i]),
			CompanyMatch: round2(companyMatch(parsed.GoalCompanies, c.Companies, c.Company)),
		}
		score := req.Weights.Vec*comp.VecSim + req.Weights.Skill*comp.SkillMatch +
			req.Weights.Job*comp.JobMatch + req.Weights.StructGlobal*comp.StructGlobal +
			req.Weights.StructEgo*comp.StructEgo + req.Weights.Company*comp.CompanyMatch
		out[i] = RankedPerson{ID: c.ID, Name: c.Name, Title: c.Title, Score: round2(score), Components: comp}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	out = rescale(out, req.RescaleTop)

	if req.TopK > 0 && len(out) > req.TopK {
		out = out[:req.TopK]
	}
	return out, nil
}

// Explain implements /rank-connections/explain: parsed goals, candidate
// count, and a bounded sample of candidate ids, with no scoring.
func (r *Ranker) Explain(ctx context.Context, meID, q string, sample int) (*ExplainResult, error) {
	req := Request{MeID: meID, Query: q, Prefilter: true}
	candidates, parsed, _, err := r.loadCandidatesAndGoals(ctx, req)
	if err != nil {
		return nil, err
	}
	if sample <= 0 {
		sample = 3
	}
	if sample > len(candidates) {
		sample = len(candidates)
	}
	ids := make([]string, sample)
	for i := 0; i < sample; i++ {
		ids[i] = candidates[i].ID
	}
	return &ExplainResult{
		GoalSkills:      parsed.GoalSkills,
		GoalJobTokens:   parsed.GoalJobTokens,
		GoalCompanies:   parsed.GoalCompanies,
		CandidateCount:  len(candidates),
		CandidateSample: ids,
	}, nil
}

// GlobalRankedPerson is one /rank result: whole-graph vector similarity
// times skills-layer bridge potential, with no KNOWS restriction.
type GlobalRankedPerson struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Title           string  `json:"title"`
	Similarity      float64 `json:"similarity"`
	BridgePotential float64 `json:"bridge_potential"`
	BridgeScore     float64 `json:"bridge_score"`
	CommunitySkills int64   `json:"community_skills"`
}

// GlobalRankResult is the plain /rank response shape: the ranked people
// plus the same list grouped by communitySkills, mirroring app.py's
// `{'people': ..., 'communities': ...}`.
type GlobalRankResult struct {
	People      []GlobalRankedPerson           `json:"people"`
	Communities map[int64][]GlobalRankedPerson `json:"communities"`
}

// RankGlobal implements the plain /rank endpoint: bridgeScore(p) =
// similarity(p) * bridgePotentialSkills(p) over vector matches against
// every person in the graph (not just me's connections), grouped by
// communitySkills, grounded on app.py's /rank handler.
func (r *Ranker) RankGlobal(ctx context.Context, q string, topK int, exclude []string) (*GlobalRankResult, error) {
	people, err := r.store.FetchAllPersons(ctx, exclude)
	if err != nil {
		return nil, err
	}
	if len(people) == 0 {
		return &GlobalRankResult{People: []GlobalRankedPerson{}, Communities: map[int64][]GlobalRankedPerson{}}, nil
	}

	vecScores, err := r.vecScores(ctx, q, topK, people)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]graphstore.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	out := make([]GlobalRankedPerson, 0, len(vecScores))
	for id, sim := range vecScores {
		p := byID[id]
		score := sim * p.BridgePotentialSkills
		out = append(out, GlobalRankedPerson{
			ID:              p.ID,
			Name:            p.Name,
			Title:           p.Title,
			Similarity:      round2(sim),
			BridgePotential: round2(p.BridgePotentialSkills),
			BridgeScore:     round2(score),
			CommunitySkills: p.CommunitySkills,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BridgeScore > out[j].BridgeScore })
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}

	grouped := map[int64][]GlobalRankedPerson{}
	for _, p := range out {
		grouped[p.CommunitySkills] = append(grouped[p.CommunitySkills], p)
	}
	return &GlobalRankResult{People: out, Communities: grouped}, nil
}

// loadCandidatesAndGoals fetches me's KNOWS candidates, builds the
// vocabulary, parses the query, and applies the prefilter.
func (r *Ranker) loadCandidatesAndGoals(ctx context.Context, req Request) ([]graphstore.Person, query.Parsed, *query.Vocabulary, error) {
	vocab, err := r.buildVocabulary(ctx)
	if err != nil {
		return nil, query.Parsed{}, nil, err
	}
	parsed := query.Parse(req.Query, vocab)

	candidates, err := r.store.FetchCandidates(ctx, req.MeID, nil)
	if err != nil {
		return nil, query.Parsed{}, nil, err
	}

	if req.Prefilter {
		candidates = prefilter(candidates, parsed)
	}
	return candidates, parsed, vocab, nil
}

func (r *Ranker) buildVocabulary(ctx context.Context) (*query.Vocabulary, error) {
	skills, err := r.store.FetchAllSkills(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := r.store.FetchAllCompanies(ctx)
	if err != nil {
		return nil, err
	}
	skillSet := make(map[string]bool, len(skills))
	for _, s := range skills {
		skillSet[s] = true
	}
	return &query.Vocabulary{Skills: skillSet, Companies: companies}, nil
}

// prefilter reduces candidates to those satisfying an OR across
// goal_skills/goal_job_tokens/goal_companies; if only goal_job_tokens and
// goal_companies are present (no goal_skills), it tightens to AND across
// those two.
func prefilter(candidates []graphstore.Person, parsed query.Parsed) []graphstore.Person {
	if len(parsed.GoalSkills) == 0 && len(parsed.GoalJobTokens) == 0 && len(parsed.GoalCompanies) == 0 {
		return candidates
	}
	tightenAnd := len(parsed.GoalSkills) == 0 && len(parsed.GoalJobTokens) > 0 && len(parsed.GoalCompanies) > 0

	goalSkills := lowerAll(parsed.GoalSkills)
	out := candidates[:0:0]
	for _, c := range candidates {
		hasSkill := overlaps(goalSkills, lowerAll(c.Skills))
		hasJob := overlaps(parsed.GoalJobTokens, expandJobTokens(c.JobTitleCanonTokens))
		hasCompany := companyMatch(parsed.GoalCompanies, c.Companies, c.Company) > 0

		var keep bool
		if tightenAnd {
			keep = hasJob && hasCompany
		} else {
			keep = hasSkill || hasJob || hasCompany
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func (r *Ranker) vecScores(ctx context.Context, q string, topK int, candidates []graphstore.Person) (map[string]float64, error) {
	scores := map[string]float64{}
	if strings.TrimSpace(q) == "" || r.embedder == nil || r.vectors == nil {
		return scores, nil
	}
	vec, err := r.embedder.Embed(ctx, q)
	if err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 1000
	}
	matches, err := r.vectors.QueryByVector(ctx, vec, topK, nil)
	if err != nil {
		return nil, err
	}
	candidateSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidateSet[c.ID] = true
	}
	for _, m := range matches {
		if candidateSet[m.ID] {
			scores[m.ID] = m.Score
		}
	}
	return scores, nil
}

// structEgoCoefficients computes, per candidate, the bridging coefficient
// over the subgraph induced by me's KNOWS neighborhood using only
// intra-ego KNOWS edges. This is read-only and computed fresh per query.
func (r *Ranker) structEgoCoefficients(ctx context.Context, meID string, candidates []graphstore.Person) ([]float64, error) {
	adj, err := r.store.EgoNetworkKnows(ctx, meID)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		deg := len(adj[c.ID])
		if deg == 0 {
			continue
		}
		invSum := 0.0
		for _, nb := range adj[c.ID] {
			if nbDeg := len(adj[nb]); nbDeg > 0 {
				invSum += 1.0 / float64(nbDeg)
			}
		}
		if invSum == 0 {
			continue
		}
		out[i] = (1.0 / float64(deg)) * (1.0 / invSum)
	}
	return out, nil
}

// expandJobTokens adds a known role-root token whenever a candidate token
// of at least 6 characters contains that root as a substring and is not
// exactly equal to it (e.g. "softwareengineer" -> adds "engineer").
func expandJobTokens(tokens []string) []string {
	out := append([]string{}, tokens...)
	seen := make(map[string]bool, len(out))
	for _, t := range out {
		seen[t] = true
	}
	for _, t := range tokens {
		lt := strings.ToLower(t)
		if len(lt) < 6 {
			continue
		}
		for root := range roleRootVocabulary {
			if root != lt && strings.Contains(lt, root) && !seen[root] {
				seen[root] = true
				out = append(out, root)
			}
		}
	}
	return out
}

var roleRootVocabulary = map[string]bool{
	"engineer": true, "developer": true, "manager": true, "analyst": true,
	"designer": true, "scientist": true, "architect": true, "software": true,
	"backend": true, "front": true, "frontend": true, "fullstack": true,
	"data": true, "ml": true, "ai": true, "qa": true, "sre": true,
	"devops": true, "security": true, "mobile": true, "ios": true, "android": true,
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := map[string]bool{}
	for _, x := range a {
		setA[x] = true
	}
	setB := map[string]bool{}
	for _, x := range b {
		setB[x] = true
	}
	inter := 0
	for x := range setA {
		if setB[x] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func overlaps(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := map[string]bool{}
	for _, x := range a {
		set[x] = true
	}
	for _, x := range b {
		if set[x] {
			return true
		}
	}
	return false
}

// companyMatch is the Jaccard of goalCompanies vs the candidate's
// company set: the WORKED_AT companies plus the company scalar
// property, deduped and lowercased; 0 when goalCompanies is empty.
func companyMatch(goalCompanies []string, companies []string, company string) float64 {
	if len(goalCompanies) == 0 {
		return 0
	}
	set := lowerAll(companies)
	if company != "" {
		set = append(set, strings.ToLower(company))
	}
	if len(set) == 0 {
		return 0
	}
	return jaccard(lowerAll(goalCompanies), set)
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func minMaxNormalize(vals []float64) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	min, max := vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out
	}
	for i, v := range vals {
		out[i] = (v - min) / (max - min)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// rescale divides every score by the max and multiplies by rescaleTop
// (ordering-preserving); a non-positive rescaleTop leaves scores as-is.
func rescale(ranked []RankedPerson, rescaleTop float64) []RankedPerson {
	if rescaleTop <= 0 || len(ranked) == 0 {
		return ranked
	}
	max := ranked[0].Score
	if max == 0 {
		return ranked
	}
	for i := range ranked {
		ranked[i].Score = round2((ranked[i].Score / max) * rescaleTop)
	}
	return ranked
}
