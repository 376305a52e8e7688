package model

// AnswerSet maps question id -> answer value for one session
type AnswerSet map[int]int

// Clone returns an independent copy
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// ScoreVector is the per-category mean of the collected answers
type ScoreVector map[Category]float64

// Clone returns an independent copy
func (s ScoreVector) Clone() ScoreVector {
	if s == nil {
		return nil
	}
	out := make(ScoreVector, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
