// Package canon turns a raw job title into a canonical category, its
// snake_case form, and a token set usable for structural layering and
// query matching. The rule cascade is a direct port of the substring
// classifier BridgeWise used to label first-degree connections, not a
// general-purpose NLP model: order matters, and the first matching rule
// wins.
package canon

import (
	"regexp"
	"strings"
	"time"
)

// Result is what canonicalization produces for one raw title.
type Result struct {
	Category string   // e.g. "Founder/Ceo", "SoftwareEngineer", "student"
	Short    string    // first two words of the category, lowercased
	Snake    string    // snake_case form of Category
	Tokens   []string  // tokens of Category, for SIMILAR_JOB grouping/matching
}

var (
	nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace    = regexp.MustCompile(`\s+`)
	dateRange     = regexp.MustCompile(`(?i)^(.+?)\s*[-–—]\s*(\d{4}(?:[./-]\d{2})?|[a-z]+)?$`)
	yearMonth     = regexp.MustCompile(`^(\d{4})[./-](\d{2})$`)
	yearOnly      = regexp.MustCompile(`^(\d{4})$`)
)

// Canonicalize classifies a raw title string. When title is empty,
// schoolDateRange (e.g. "2021-09 - Present") decides between "student"
// and "unemployed".
func Canonicalize(title, schoolDateRange string, now time.Time) Result {
	t := strings.TrimSpace(title)
	if t == "" {
		if schoolActive(schoolDateRange, now) {
			t = "student"
		} else {
			t = "unemployed"
		}
	}
	category := categorize(t)
	return buildResult(category)
}

func buildResult(category string) Result {
	if category == "student" || category == "unemployed" {
		return Result{Category: category, Short: category, Snake: category, Tokens: []string{category}}
	}
	base := strings.ReplaceAll(category, "/", " ")
	words := splitWords(base)
	short := base
	if len(words) >= 2 {
		short = strings.Join(words[:2], " ")
	} else if len(words) == 1 {
		short = words[0]
	}
	snake := strings.Trim(nonAlnumSpace.ReplaceAllString(strings.ToLower(strings.Join(words, " ")), "_"), "_")
	snake = whitespace.ReplaceAllString(snake, "_")
	return Result{
		Category: category,
		Short:    strings.ToLower(short),
		Snake:    snake,
		Tokens:   lowerAll(words),
	}
}

// splitWords breaks "FounderCeo"-style CamelCase/slash text into words.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i, r := range s {
		switch {
		case r == ' ' || r == '/':
			flush()
		case r >= 'A' && r <= 'Z' && i > 0 && cur.Len() > 0:
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

func lowerAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

// categorize runs the substring-matching rule cascade against a
// lowercased title, returning a CamelCase or slash/CamelCase category.
func categorize(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	var cat string

	switch {
	case containsAny(base, "co-founder", "cofounder", "founder", "ceo", "chief executive officer"):
		cat = "founder/ceo"
	case containsAny(base, "chief technology officer", "cto", "chief operating officer", "svp", "vice president"):
		cat = "executive"
	case containsAny(base, "recruit", "talent acquisition", "technical recruiter", "recruiter", "hrbp", "human resources", "hr ", " hr", "people"):
		cat = "recruiting/hr"
	case strings.Contains(base, "product"):
		cat = "product"
	case strings.Contains(base, "design") && !strings.Contains(base, "product"):
		cat = "design"
	case containsAny(base, "ml ", " ml", "machine learning", "ai/", "ai ", " ai", "artificial intelligence", "applied scientist", "research scientist", "data and applied scientist"):
		switch {
		case strings.Contains(base, "data scientist") && containsAny(base, "ml", "machine learning", "ai"):
			cat = "ml engineer"
		case strings.Contains(base, "data scientist"):
			cat = "data scientist"
		case containsAny(base, "intern", "trainee", "co-op", "co op"):
			cat = "intern"
		default:
			cat = "ml engineer"
		}
	case strings.Contains(base, "data scientist"):
		cat = "data scientist"
	case containsAny(base, "data engineer", "big data engineer", "cloud data engineer"):
		cat = "data engineer"
	case strings.Contains(base, "analyst"):
		cat = "analyst"
	case containsAny(base, "devops", "site reliability engineer", "sre", "system engineer - devops"):
		cat = "devops/sre"
	case containsAny(base, "software engineer", "sde", "developer", "programmer", "member of technical staff", "mots", "mts",
		".net developer", "full stack", "frontend", "backend", "react developer", "zoho developer",
		"solutions engineer", "software qa engineer", "software quality engineer", "software project developer",
		"software development engineer", "software engineering manager", "software engineering specialist"):
		cat = "software engineer"
	case containsAny(base, "cloud engineer", "cloud support engineer", "azure cloud engineer"):
		cat = "cloud engineer"
	case strings.Contains(base, "security"):
		cat = "security"
	case containsAny(base, "solutions architect", "architect"):
		cat = "architect"
	case containsAny(base, "quality", "qa "):
		cat = "qa"
	case containsAny(base, "consultant", "advisor"):
		cat = "consultant/advisor"
	case containsAny(base, "manager", "program manager", "project manager", "operations manager", "lead ", "lead,", "lead-", "lead/"):
		cat = "management"
	case containsAny(base, "marketing", "sales", "business development", "account executive", "public relations"):
		cat = "sales/marketing"
	case containsAny(base, "professor", "lecturer", "teaching assistant", "graduate", "adjunct", "visiting graduate student", "student research", "faculty"):
		cat = "academic"
	case strings.Contains(base, "research"):
		cat = "research"
	case strings.Contains(base, "engineer"):
		cat = "engineer"
	case containsAny(base, "intern", "trainee", "co-op", "co op"):
		cat = "intern"
	case containsAny(base, "customer", "support", "assistant"):
		cat = "support"
	case strings.Contains(base, "network"):
		cat = "network engineer"
	case strings.Contains(base, "supply chain"):
		cat = "supply chain"
	case containsAny(base, "quantitative", "investment banking", "finance", "financial"):
		cat = "finance/quant"
	case strings.Contains(base, "human resources") || base == "hr":
		cat = "recruiting/hr"
	case containsAny(base, "writer", "content creator", "writing"):
		cat = "content/writing"
	case containsAny(base, "operations", "admin", "administrator"):
		cat = "operations"
	default:
		if base == "student" || base == "unemployed" {
			return base
		}
		cat = "other"
	}

	parts := strings.Split(cat, "/")
	for i, p := range parts {
		words := strings.Fields(p)
		for j, w := range words {
			words[j] = titleCase(w)
		}
		parts[i] = strings.Join(words, "")
	}
	return strings.Join(parts, "/")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// schoolActive reports whether a "<start> - <end>" date range (as stored
// raw from ingestion, e.g. "2021-09 - Present") is still open-ended.
func schoolActive(dateRangeStr string, now time.Time) bool {
	s := strings.TrimSpace(dateRangeStr)
	if s == "" {
		return false
	}
	m := dateRange.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	end := parseDatePiece(strings.TrimSpace(m[2]))
	if end == nil {
		return true
	}
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return !end.Before(firstOfMonth)
}

func parseDatePiece(piece string) *time.Time {
	p := strings.ToLower(strings.TrimSpace(piece))
	if p == "" || p == "present" || p == "current" || p == "now" {
		return nil
	}
	if m := yearMonth.FindStringSubmatch(p); m != nil {
		t, err := time.Parse("2006-01", m[1]+"-"+m[2])
		if err == nil {
			return &t
		}
	}
	if m := yearOnly.FindStringSubmatch(p); m != nil {
		t, err := time.Parse("2006", m[1])
		if err == nil {
			return &t
		}
	}
	return nil
}
