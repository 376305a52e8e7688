// Package scoring reduces an answer set to per-category mean scores.
package scoring

import (
	"sort"

	"careervision/internal/model"
)

// Compute returns the mean answer value per category. Every category is present
// in the result; categories without answers score 0. Answers for ids that are
// not in questions are ignored.
func Compute(answers model.AnswerSet, questions []model.Question) model.ScoreVector {
	sums := make(model.ScoreVector, len(model.Categories))
	counts := make(map[model.Category]int, len(model.Categories))
	for _, c := range model.Categories {
		sums[c] = 0
	}

	for _, q := range questions {
		v, ok := answers[q.ID]
		if !ok {
			continue
		}
		sums[q.Category] += float64(v)
		counts[q.Category]++
	}

	for c, n := range counts {
		if n > 0 {
			sums[c] = sums[c] / float64(n)
		}
	}
	return sums
}

// Complete reports whether every question has an answer.
func Complete(answers model.AnswerSet, questions []model.Question) bool {
	for _, q := range questions {
		if _, ok := answers[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Rank orders categories by descending score; ties keep R-I-A-S-E-C order.
func Rank(scores model.ScoreVector) []model.Category {
	ranked := make([]model.Category, len(model.Categories))
	copy(ranked, model.Categories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

// TopCode is the two-letter code of the two highest-scoring categories.
func TopCode(scores model.ScoreVector) string {
	ranked := Rank(scores)
	return ranked[0].Letter() + ranked[1].Letter()
}
