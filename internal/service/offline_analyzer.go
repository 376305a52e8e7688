package service

import (
	"context"
	"fmt"

	"careervision/internal/catalog"
	"careervision/internal/model"
	"careervision/internal/scoring"
)

// occupations are the canned suggestions used when no analysis API is configured
var occupations = map[model.Category][]model.RecommendedJob{
	model.Realistic: {
		{Title: "Mechanical Technician", Reason: "Enjoys hands-on work with machines", DailyLife: "Inspecting, repairing and testing equipment on site", SkillsNeeded: []string{"tool handling", "troubleshooting"}},
		{Title: "Landscape Gardener", Reason: "Prefers outdoor, physical work", DailyLife: "Planting and maintaining green spaces", SkillsNeeded: []string{"horticulture", "stamina"}},
	},
	model.Investigative: {
		{Title: "Data Scientist", Reason: "Likes finding patterns in complex data", DailyLife: "Cleaning data, building models and presenting findings", SkillsNeeded: []string{"statistics", "programming"}},
		{Title: "Research Scientist", Reason: "Driven by curiosity about how things work", DailyLife: "Designing experiments and writing papers", SkillsNeeded: []string{"research methods", "critical thinking"}},
	},
	model.Artistic: {
		{Title: "UX Designer", Reason: "Combines creativity with aesthetic judgement", DailyLife: "Sketching flows and testing prototypes with users", SkillsNeeded: []string{"visual design", "empathy"}},
		{Title: "Content Writer", Reason: "Enjoys creative expression", DailyLife: "Drafting, editing and publishing stories", SkillsNeeded: []string{"writing", "storytelling"}},
	},
	model.Social: {
		{Title: "School Counselor", Reason: "Finds helping others rewarding", DailyLife: "Meeting students and planning support programs", SkillsNeeded: []string{"active listening", "communication"}},
		{Title: "Nurse", Reason: "Cares about people's wellbeing", DailyLife: "Treating patients and coordinating with doctors", SkillsNeeded: []string{"care", "composure"}},
	},
	model.Enterprising: {
		{Title: "Product Manager", Reason: "Likes leading teams toward goals", DailyLife: "Setting priorities and aligning stakeholders", SkillsNeeded: []string{"leadership", "negotiation"}},
		{Title: "Sales Manager", Reason: "Confident persuading others", DailyLife: "Meeting clients and closing deals", SkillsNeeded: []string{"persuasion", "resilience"}},
	},
	model.Conventional: {
		{Title: "Accountant", Reason: "Accurate with records and numbers", DailyLife: "Preparing statements and reconciling accounts", SkillsNeeded: []string{"bookkeeping", "attention to detail"}},
		{Title: "Operations Administrator", Reason: "Comfortable with clear procedures", DailyLife: "Scheduling, filing and keeping processes running", SkillsNeeded: []string{"organization", "spreadsheets"}},
	},
}

// OfflineAnalyzer derives a deterministic result from the ranked scores.
// It is wired instead of the gateway when no API key is configured.
type OfflineAnalyzer struct {
	catalog *catalog.Catalog
}

func NewOfflineAnalyzer(cat *catalog.Catalog) *OfflineAnalyzer {
	return &OfflineAnalyzer{catalog: cat}
}

func (a *OfflineAnalyzer) Analyze(_ context.Context, scores model.ScoreVector) (*model.AnalysisResult, error) {
	ranked := scoring.Rank(scores)
	first, second, third := ranked[0], ranked[1], ranked[2]

	recs := make([]model.RecommendedJob, 0, 3)
	recs = append(recs, occupations[first]...)
	recs = append(recs, occupations[second][0])
	if len(recs) > 3 {
		recs = recs[:3]
	}

	info := a.catalog.Info(first)
	return &model.AnalysisResult{
		TopType:    first,
		TopTwoCode: scoring.TopCode(scores),
		Summary: fmt.Sprintf("Your strongest interest is %s (%.1f), followed by %s. %s",
			info.Label, scores[first], a.catalog.Info(second).Label, info.Description),
		Recommendations: recs,
		CareerAdvice: fmt.Sprintf("Look for roles that combine %s and %s work, and try a short project in %s to test your third interest.",
			first, second, third),
	}, nil
}
