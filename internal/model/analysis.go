package model

// RecommendedJob is one occupation suggested by the analysis service
type RecommendedJob struct {
	Title        string   `json:"title" bson:"title"`
	Reason       string   `json:"reason" bson:"reason"`
	DailyLife    string   `json:"dailyLife" bson:"dailyLife"`
	SkillsNeeded []string `json:"skillsNeeded" bson:"skillsNeeded"`
}

// AnalysisResult is the interpretation returned for a score vector
type AnalysisResult struct {
	TopType         Category         `json:"topType" bson:"topType"`
	TopTwoCode      string           `json:"topTwoCode" bson:"topTwoCode"` // e.g. "SA"
	Summary         string           `json:"summary" bson:"summary"`
	Recommendations []RecommendedJob `json:"recommendations" bson:"recommendations"`
	CareerAdvice    string           `json:"careerAdvice" bson:"careerAdvice"`
}
