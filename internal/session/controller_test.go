package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"careervision/internal/apperrors"
	"careervision/internal/catalog"
	"careervision/internal/model"
	"careervision/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	result *model.AnalysisResult
	err    error
	calls  int
	got    model.ScoreVector
}

func (a *stubAnalyzer) Analyze(_ context.Context, scores model.ScoreVector) (*model.AnalysisResult, error) {
	a.calls++
	a.got = scores
	return a.result, a.err
}

type memStore struct {
	records []*model.StorageRecord
	err     error
}

func (s *memStore) Append(_ context.Context, r *model.StorageRecord) error {
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.records {
		if existing.ID == r.ID {
			return apperrors.NewStorageDuplicate(r.ID, errors.New("UNIQUE constraint failed: records.id"))
		}
	}
	s.records = append(s.records, r)
	return nil
}

type fixedIDs struct{ id string }

func (f fixedIDs) NewID() string { return f.id }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

var validProfile = model.UserProfile{Name: "A", Email: "a@x.com", Phone: "000", Consent: true}

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		TopType:    model.Social,
		TopTwoCode: "SA",
		Summary:    "people person",
		Recommendations: []model.RecommendedJob{
			{Title: "Counselor", Reason: "empathy", DailyLife: "sessions", SkillsNeeded: []string{"listening"}},
		},
		CareerAdvice: "volunteer",
	}
}

func testDeps(a *stubAnalyzer, store *memStore) Deps {
	return Deps{
		Questions: catalog.Default().Questions(),
		Scale:     Scale{Min: 1, Max: 5},
		Analyzer:  a,
		Store:     store,
		IDs:       fixedIDs{id: "rec-1"},
		Clock:     fixedClock{t: time.Date(2026, 3, 1, 9, 30, 0, 0, time.FixedZone("KST", 9*3600))},
	}
}

func newTestController(t *testing.T, a *stubAnalyzer, store *memStore) *Controller {
	t.Helper()
	return NewController(*model.NewSession("s1"), testDeps(a, store))
}

func answerAll(t *testing.T, c *Controller, value func(q model.Question) int) error {
	t.Helper()
	var err error
	for {
		q, ok := c.CurrentQuestion()
		if !ok {
			return err
		}
		err = c.Answer(context.Background(), q.ID, value(q))
		if c.State() != model.SessionSurvey {
			return err
		}
		require.NoError(t, err)
	}
}

func socialFirst(q model.Question) int {
	switch q.Category {
	case model.Social:
		return 5
	case model.Artistic:
		return 4
	}
	return 2
}

func TestController_FullSessionCommitsOneRecord(t *testing.T) {
	a := &stubAnalyzer{result: sampleResult()}
	store := &memStore{}
	c := newTestController(t, a, store)

	require.NoError(t, c.Start())
	require.NoError(t, answerAll(t, c, socialFirst))
	require.Equal(t, model.SessionProfileEntry, c.State())
	assert.Equal(t, 1, a.calls)

	record, err := c.SubmitProfile(context.Background(), validProfile)
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, model.SessionResult, snap.State)
	require.Len(t, store.records, 1)
	assert.Same(t, record, store.records[0])
	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, "rec-1", snap.RecordID)
	assert.Equal(t, "SA", record.RiasecCode)
	assert.Equal(t, "2026-03-01T00:30:00Z", record.Date)
	assert.Equal(t, validProfile, record.UserProfile)

	expected := scoring.Compute(snap.Answers, catalog.Default().Questions())
	assert.Equal(t, expected, record.Scores)
	assert.Equal(t, expected, a.got)
	assert.Equal(t, 5.0, record.Scores[model.Social])
}

func TestController_AnalyzerReceivesCompleteAnswers(t *testing.T) {
	a := &stubAnalyzer{result: sampleResult()}
	c := newTestController(t, a, &memStore{})
	require.NoError(t, c.Start())

	questions := catalog.Default().Questions()
	for i, q := range questions[:len(questions)-1] {
		require.NoError(t, c.Answer(context.Background(), q.ID, 3))
		assert.Zero(t, a.calls, "analysis must not run after answer %d", i+1)
	}
	require.NoError(t, c.Answer(context.Background(), 0, 3))
	assert.Equal(t, 1, a.calls)
	assert.True(t, scoring.Complete(c.Snapshot().Answers, questions))
}

func TestController_AnalysisFailureReturnsToIntro(t *testing.T) {
	a := &stubAnalyzer{err: apperrors.NewMalformed("missing recommendations", nil)}
	c := newTestController(t, a, &memStore{})
	require.NoError(t, c.Start())

	err := answerAll(t, c, func(model.Question) int { return 3 })

	var aerr *apperrors.AnalysisError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, apperrors.CodeAnalysisMalformed, aerr.Code())
	snap := c.Snapshot()
	assert.Equal(t, model.SessionIntro, snap.State)
	assert.True(t, snap.Failed)
	assert.Empty(t, snap.Answers)
	assert.Nil(t, snap.Analysis)
}

func TestController_ForeignAnalyzerErrorIsClassified(t *testing.T) {
	a := &stubAnalyzer{err: errors.New("dial tcp: refused")}
	c := newTestController(t, a, &memStore{})
	require.NoError(t, c.Start())

	err := answerAll(t, c, func(model.Question) int { return 3 })

	assert.Equal(t, apperrors.CodeAnalysisUnavailable, apperrors.CodeOf(err))
	assert.Equal(t, model.SessionIntro, c.State())
}

func TestController_NilResultIsMalformed(t *testing.T) {
	c := newTestController(t, &stubAnalyzer{}, &memStore{})
	require.NoError(t, c.Start())

	err := answerAll(t, c, func(model.Question) int { return 3 })

	assert.Equal(t, apperrors.CodeAnalysisMalformed, apperrors.CodeOf(err))
	assert.True(t, c.Snapshot().Failed)
}

func TestController_AnswerValidation(t *testing.T) {
	c := newTestController(t, &stubAnalyzer{result: sampleResult()}, &memStore{})

	err := c.Answer(context.Background(), 0, 3)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, c.Start())
	for _, v := range []int{0, 6, -1} {
		err := c.Answer(context.Background(), 0, v)
		assert.True(t, apperrors.IsValidation(err), "value %d", v)
	}
	err = c.Answer(context.Background(), 7, 3)
	assert.True(t, apperrors.IsValidation(err))

	snap := c.Snapshot()
	assert.Empty(t, snap.Answers)
	assert.Zero(t, snap.Index)
}

func TestController_ProfileValidation(t *testing.T) {
	tests := []struct {
		name    string
		profile model.UserProfile
		field   string
	}{
		{"missing name", model.UserProfile{Email: "a@x.com", Phone: "000", Consent: true}, "name"},
		{"blank name", model.UserProfile{Name: "  ", Email: "a@x.com", Phone: "000", Consent: true}, "name"},
		{"bad email", model.UserProfile{Name: "A", Email: "nope", Phone: "000", Consent: true}, "email"},
		{"missing phone", model.UserProfile{Name: "A", Email: "a@x.com", Consent: true}, "phone"},
		{"no consent", model.UserProfile{Name: "A", Email: "a@x.com", Phone: "000"}, "consent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memStore{}
			c := newTestController(t, &stubAnalyzer{result: sampleResult()}, store)
			require.NoError(t, c.Start())
			require.NoError(t, answerAll(t, c, socialFirst))

			_, err := c.SubmitProfile(context.Background(), tt.profile)

			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, model.SessionProfileEntry, c.State())
			assert.Empty(t, store.records)
		})
	}
}

func TestController_StorageFailureKeepsProfileEntry(t *testing.T) {
	store := &memStore{err: errors.New("quota exceeded")}
	c := newTestController(t, &stubAnalyzer{result: sampleResult()}, store)
	require.NoError(t, c.Start())
	require.NoError(t, answerAll(t, c, socialFirst))

	_, err := c.SubmitProfile(context.Background(), validProfile)

	require.True(t, apperrors.IsStorage(err))
	assert.Equal(t, apperrors.CodeStorageWrite, apperrors.CodeOf(err))
	assert.Equal(t, model.SessionProfileEntry, c.State())
	assert.Empty(t, c.Snapshot().RecordID)

	store.err = nil
	_, err = c.SubmitProfile(context.Background(), validProfile)
	require.NoError(t, err)
	assert.Equal(t, model.SessionResult, c.State())
	assert.Len(t, store.records, 1)
}

func TestController_ReserveRecordID(t *testing.T) {
	c := newTestController(t, &stubAnalyzer{result: sampleResult()}, &memStore{})
	assert.False(t, c.ReserveRecordID(), "no id before profile entry")

	require.NoError(t, c.Start())
	require.NoError(t, answerAll(t, c, socialFirst))

	assert.True(t, c.ReserveRecordID())
	assert.Equal(t, "rec-1", c.Snapshot().PendingRecordID)
	assert.False(t, c.ReserveRecordID(), "id is kept once reserved")

	require.NoError(t, c.Restart())
	assert.Empty(t, c.Snapshot().PendingRecordID)
}

func TestController_ResubmitAfterLostSnapshotStoresOneRecord(t *testing.T) {
	store := &memStore{}
	a := &stubAnalyzer{result: sampleResult()}
	c := newTestController(t, a, store)
	require.NoError(t, c.Start())
	require.NoError(t, answerAll(t, c, socialFirst))
	require.True(t, c.ReserveRecordID())
	saved := c.Snapshot()

	_, err := c.SubmitProfile(context.Background(), validProfile)
	require.NoError(t, err)

	// The session store still holds the pre-append snapshot.
	retry := NewController(saved, testDeps(a, store))
	record, err := retry.SubmitProfile(context.Background(), validProfile)

	require.NoError(t, err)
	assert.Equal(t, "rec-1", record.ID)
	assert.Equal(t, model.SessionResult, retry.State())
	assert.Equal(t, "rec-1", retry.Snapshot().RecordID)
	assert.Len(t, store.records, 1)
}

func TestController_RestartFromResultKeepsRecords(t *testing.T) {
	store := &memStore{}
	c := newTestController(t, &stubAnalyzer{result: sampleResult()}, store)
	require.NoError(t, c.Start())
	require.NoError(t, answerAll(t, c, socialFirst))
	_, err := c.SubmitProfile(context.Background(), validProfile)
	require.NoError(t, err)

	require.NoError(t, c.Restart())

	snap := c.Snapshot()
	assert.Equal(t, model.SessionSurvey, snap.State)
	assert.Empty(t, snap.Answers)
	assert.Zero(t, snap.Index)
	assert.Nil(t, snap.Profile)
	assert.Len(t, store.records, 1)
}

func TestController_SnapshotIsIndependent(t *testing.T) {
	c := newTestController(t, &stubAnalyzer{result: sampleResult()}, &memStore{})
	require.NoError(t, c.Start())
	require.NoError(t, c.Answer(context.Background(), 1, 4))

	snap := c.Snapshot()
	snap.Answers[1] = 1

	assert.Equal(t, 4, c.Snapshot().Answers[1])
}
