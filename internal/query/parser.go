// Package query implements the pure, deterministic parse of a free-text
// "what I'm looking for" query into the signal sets the ranker consumes:
// skill vocabulary hits, job-role tokens, and company mentions (including
// fuzzy ones like "gogle"). Nothing here calls an LLM — it is vocabulary
// and rule driven so it can run on every request with no latency or cost.
package query

import (
	"regexp"
	"strings"
)

// roleRoots is the fixed vocabulary of singular job-role tokens. Plurals
// and "<x>engineer"-suffixed compounds are derived at parse time.
var roleRoots = map[string]bool{
	"engineer": true, "developer": true, "manager": true, "analyst": true,
	"designer": true, "scientist": true, "architect": true, "software": true,
	"backend": true, "front": true, "frontend": true, "fullstack": true,
	"full-stack": true, "data": true, "ml": true, "ai": true, "qa": true,
	"sre": true, "devops": true, "security": true, "mobile": true,
	"ios": true, "android": true,
}

var separator = regexp.MustCompile(`[^a-z0-9+]+`)

// Parsed holds the three extracted signal sets for one query string.
type Parsed struct {
	Tokens        []string
	GoalSkills    []string
	GoalJobTokens []string
	GoalCompanies []string
}

// Vocabulary is the lookup data the parser needs. The ranker builds it
// from the graph store on every rank or explain call; it is not cached
// between requests. It is safe to share across goroutines once built;
// callers must not mutate it.
type Vocabulary struct {
	Skills    map[string]bool
	Companies []string // known company names, lowercased
}

// Parse tokenizes query and extracts goal_skills / goal_job_tokens /
// goal_companies using vocab. vocab may be nil, in which case skill and
// company extraction are skipped (job-token extraction still works,
// since it needs no vocabulary).
func Parse(q string, vocab *Vocabulary) Parsed {
	lower := strings.ToLower(q)
	tokens := tokenize(lower)

	p := Parsed{Tokens: tokens}
	p.GoalSkills = extractSkills(tokens, vocab)
	p.GoalJobTokens = extractJobTokens(tokens)
	p.GoalCompanies = extractCompanies(lower, tokens, vocab)
	return p
}

func tokenize(lower string) []string {
	raw := separator.Split(lower, -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func extractSkills(tokens []string, vocab *Vocabulary) []string {
	if vocab == nil || len(vocab.Skills) == 0 {
		return nil
	}
	seen := map[string]bool{}
	var out []string
	for _, t := range tokens {
		if vocab.Skills[t] && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// extractJobTokens matches role roots, their regular plurals, and any
// token ending in "engineer" (e.g. "mlengineer" would not occur from
// tokenization, but "platform-engineer" style hyphenated compounds split
// into "platform"+"engineer" already; this additionally catches plural
// "engineers" and similar -s/-es plurals of every root).
func extractJobTokens(tokens []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range tokens {
		if roleRoots[t] {
			add(t)
			continue
		}
		if singular := singularize(t); singular != "" && roleRoots[singular] {
			add(singular)
			continue
		}
		if strings.HasSuffix(t, "engineer") {
			add("engineer")
		}
	}
	return out
}

// singularize strips a common English plural suffix; returns "" if the
// token does not look plural (so callers can ignore it rather than treat
// singular tokens as false matches).
func singularize(t string) string {
	switch {
	case strings.HasSuffix(t, "ies") && len(t) > 4:
		return t[:len(t)-3] + "y"
	case strings.HasSuffix(t, "ses") && len(t) > 4:
		return t[:len(t)-2]
	case strings.HasSuffix(t, "s") && !strings.HasSuffix(t, "ss") && len(t) > 3:
		return t[:len(t)-1]
	}
	return ""
}

var atPattern = regexp.MustCompile(`\bat\s+([a-z0-9][a-z0-9 .&-]{0,40}?)(?:\s+(?:who|that|as|in|with)\b|[.,!?]|$)`)
var companyPattern = regexp.MustCompile(`\bcompany\s+([a-z0-9][a-z0-9 .&-]{0,40}?)(?:\s+(?:who|that|as|in|with)\b|[.,!?]|$)`)

// extractCompanies finds explicit "at X" / "company X" mentions, whole-word
// matches against known companies, and fuzzy matches (prefix or bounded
// Levenshtein distance) for typos like "gogle" -> "google".
func extractCompanies(lower string, tokens []string, vocab *Vocabulary) []string {
	seen := map[string]bool{}
	var out []string
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	var terms []string
	for _, m := range atPattern.FindAllStringSubmatch(lower, -1) {
		terms = append(terms, strings.TrimSpace(m[1]))
	}
	for _, m := range companyPattern.FindAllStringSubmatch(lower, -1) {
		terms = append(terms, strings.TrimSpace(m[1]))
	}
	terms = append(terms, tokens...)

	if vocab != nil {
		tokenSet := map[string]bool{}
		for _, t := range tokens {
			tokenSet[t] = true
		}
		for _, c := range vocab.Companies {
			if tokenSet[c] {
				add(c)
				continue
			}
			for _, t := range terms {
				if len(t) >= 4 && fuzzyMatch(t, c) {
					add(c)
					break
				}
			}
		}
	}
	return out
}

// fuzzyMatch accepts a prefix match in either direction (min 4 chars) or
// a Levenshtein distance <= 2 for names up to 8 chars / <= 3 for longer
// ones, so "gogle" matches "google" and "mircosoft" matches "microsoft".
func fuzzyMatch(token, company string) bool {
	if len(token) >= 4 && (strings.HasPrefix(company, token) || strings.HasPrefix(token, company)) {
		return true
	}
	maxDist := 2
	if len(company) > 8 {
		maxDist = 3
	}
	return levenshtein(token, company) <= maxDist
}

func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}
