// Package session implements the survey state machine.
//
// Next is a pure reducer over model.Session snapshots; it performs no I/O.
// Controller layers the side effects on top: input validation, the analysis
// call and the record commit.
package session

import (
	"errors"
	"fmt"

	"careervision/internal/model"
	"careervision/internal/scoring"
)

var (
	// ErrInvalidTransition is returned when an event is not accepted in the current state.
	ErrInvalidTransition = errors.New("invalid session transition")
	// ErrIncompleteAnswers guards the survey -> analyzing edge.
	ErrIncompleteAnswers = errors.New("answer set is incomplete")
)

// Event is an input to the state machine
type Event interface {
	Name() string
}

// Start begins the survey from the intro screen.
type Start struct{}

// Answer records a value for the current question.
type Answer struct {
	Value int
}

// AnalysisSucceeded carries the analysis for the computed scores.
type AnalysisSucceeded struct {
	Result *model.AnalysisResult
}

// AnalysisFailed drops the session back to intro with the error flag set.
type AnalysisFailed struct{}

// ProfileCommitted marks the record as persisted.
type ProfileCommitted struct {
	Profile  model.UserProfile
	RecordID string
}

// Restart resets the session to the first question from any state.
type Restart struct{}

func (Start) Name() string             { return "start" }
func (Answer) Name() string            { return "answer" }
func (AnalysisSucceeded) Name() string { return "analysis_succeeded" }
func (AnalysisFailed) Name() string    { return "analysis_failed" }
func (ProfileCommitted) Name() string  { return "profile_committed" }
func (Restart) Name() string           { return "restart" }

// Next applies ev to s and returns the resulting snapshot. On error the
// returned snapshot is s unchanged. The input snapshot is never mutated.
func Next(s model.Session, ev Event, questions []model.Question) (model.Session, error) {
	switch e := ev.(type) {
	case Start:
		if s.State != model.SessionIntro {
			return s, invalid(s.State, ev)
		}
		return reset(s), nil

	case Restart:
		return reset(s), nil

	case Answer:
		if s.State != model.SessionSurvey || s.Index < 0 || s.Index >= len(questions) {
			return s, invalid(s.State, ev)
		}
		next := s
		next.Answers = s.Answers.Clone()
		next.Answers[questions[s.Index].ID] = e.Value

		if s.Index < len(questions)-1 {
			next.Index = s.Index + 1
			return next, nil
		}
		if !scoring.Complete(next.Answers, questions) {
			return s, ErrIncompleteAnswers
		}
		next.State = model.SessionAnalyzing
		next.Scores = scoring.Compute(next.Answers, questions)
		return next, nil

	case AnalysisSucceeded:
		if s.State != model.SessionAnalyzing || e.Result == nil {
			return s, invalid(s.State, ev)
		}
		next := s
		next.State = model.SessionProfileEntry
		next.Analysis = e.Result
		next.Failed = false
		return next, nil

	case AnalysisFailed:
		if s.State != model.SessionAnalyzing {
			return s, invalid(s.State, ev)
		}
		return model.Session{
			ID:      s.ID,
			State:   model.SessionIntro,
			Answers: model.AnswerSet{},
			Failed:  true,
		}, nil

	case ProfileCommitted:
		if s.State != model.SessionProfileEntry || e.RecordID == "" {
			return s, invalid(s.State, ev)
		}
		next := s
		profile := e.Profile
		next.State = model.SessionResult
		next.Profile = &profile
		next.RecordID = e.RecordID
		return next, nil
	}
	return s, fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, ev)
}

// reset returns the survey-start snapshot: empty answers, first question, no profile.
func reset(s model.Session) model.Session {
	return model.Session{
		ID:      s.ID,
		State:   model.SessionSurvey,
		Answers: model.AnswerSet{},
	}
}

func invalid(state model.SessionState, ev Event) error {
	return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, ev.Name(), state)
}
