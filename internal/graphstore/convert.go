package graphstore

import "github.com/neo4j/neo4j-go-driver/v5/neo4j"

func recordsToPeople(res *neo4j.EagerResult) ([]Person, error) {
	people := make([]Person, 0, len(res.Records))
	for _, rec := range res.Records {
		p := Person{}
		if v, ok := rec.Get("id"); ok {
			p.ID, _ = v.(string)
		}
		if v, ok := rec.Get("name"); ok {
			p.Name, _ = v.(string)
		}
		if v, ok := rec.Get("title"); ok {
			p.Title, _ = v.(string)
		}
		if v, ok := rec.Get("company"); ok {
			p.Company, _ = v.(string)
		}
		if v, ok := rec.Get("companies"); ok {
			p.Companies = toStringSlice(v)
		}
		if v, ok := rec.Get("skills"); ok {
			p.Skills = toStringSlice(v)
		}
		if v, ok := rec.Get("jobTitleCanon"); ok {
			p.JobTitleCanon, _ = v.(string)
		}
		if v, ok := rec.Get("jobTitleCanonTokens"); ok {
			p.JobTitleCanonTokens = toStringSlice(v)
		}
		if v, ok := rec.Get("communitySkills"); ok {
			p.CommunitySkills, _ = v.(int64)
		}
		if v, ok := rec.Get("communityJob"); ok {
			p.CommunityJob, _ = v.(int64)
		}
		if v, ok := rec.Get("betweennessSkills"); ok {
			p.BetweennessSkills, _ = v.(float64)
		}
		if v, ok := rec.Get("betweennessJob"); ok {
			p.BetweennessJob, _ = v.(float64)
		}
		if v, ok := rec.Get("bridgeCoeffSkills"); ok {
			p.BridgeCoeffSkills, _ = v.(float64)
		}
		if v, ok := rec.Get("bridgeCoeffJob"); ok {
			p.BridgeCoeffJob, _ = v.(float64)
		}
		if v, ok := rec.Get("bridgePotentialSkills"); ok {
			p.BridgePotentialSkills, _ = v.(float64)
		}
		if v, ok := rec.Get("bridgePotentialJob"); ok {
			p.BridgePotentialJob, _ = v.(float64)
		}
		if v, ok := rec.Get("similarDegreeSkills"); ok {
			p.SimilarDegreeSkills, _ = v.(int64)
		}
		if v, ok := rec.Get("similarDegreeJob"); ok {
			p.SimilarDegreeJob, _ = v.(int64)
		}
		people = append(people, p)
	}
	return people, nil
}
