package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"careervision/internal/apperrors"
	"careervision/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Analyzer interprets a complete score vector
type Analyzer interface {
	Analyze(ctx context.Context, scores model.ScoreVector) (*model.AnalysisResult, error)
}

// RecordAppender persists a completed session
type RecordAppender interface {
	Append(ctx context.Context, record *model.StorageRecord) error
}

// IDGenerator produces unique record identifiers
type IDGenerator interface {
	NewID() string
}

// Clock supplies record timestamps
type Clock interface {
	Now() time.Time
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Scale is the inclusive range accepted for answer values
type Scale struct {
	Min int
	Max int
}

// Deps are the collaborators shared by every controller
type Deps struct {
	Questions []model.Question
	Scale     Scale
	Analyzer  Analyzer
	Store     RecordAppender
	IDs       IDGenerator
	Clock     Clock
	Validate  *validator.Validate
	Logger    *zap.Logger
}

// Controller drives one session. It is not safe for concurrent use.
type Controller struct {
	deps Deps
	snap model.Session
}

// NewController resumes a controller at the given snapshot. Missing optional
// dependencies get defaults.
func NewController(snap model.Session, deps Deps) *Controller {
	if deps.IDs == nil {
		deps.IDs = UUIDGenerator{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.Validate == nil {
		deps.Validate = validator.New()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if snap.Answers == nil {
		snap.Answers = model.AnswerSet{}
	}
	return &Controller{deps: deps, snap: snap}
}

// Snapshot returns an independent copy of the current state.
func (c *Controller) Snapshot() model.Session {
	out := c.snap
	out.Answers = c.snap.Answers.Clone()
	out.Scores = c.snap.Scores.Clone()
	if c.snap.Profile != nil {
		p := *c.snap.Profile
		out.Profile = &p
	}
	return out
}

// State is the current state tag
func (c *Controller) State() model.SessionState { return c.snap.State }

// CurrentQuestion is the question awaiting an answer, if the survey is running.
func (c *Controller) CurrentQuestion() (model.Question, bool) {
	if c.snap.State != model.SessionSurvey || c.snap.Index >= len(c.deps.Questions) {
		return model.Question{}, false
	}
	return c.deps.Questions[c.snap.Index], true
}

// Start leaves the intro screen.
func (c *Controller) Start() error {
	return c.apply(Start{})
}

// Restart returns to the first question from any state. Stored records are untouched.
func (c *Controller) Restart() error {
	return c.apply(Restart{})
}

// Answer records value for the current question. questionID may be 0; when set
// it must name the current question. Answering the last question computes the
// scores and runs the analysis before returning.
func (c *Controller) Answer(ctx context.Context, questionID, value int) error {
	if c.snap.State != model.SessionSurvey {
		return invalid(c.snap.State, Answer{})
	}
	if value < c.deps.Scale.Min || value > c.deps.Scale.Max {
		return apperrors.NewValidation("value", fmt.Sprintf("must be between %d and %d", c.deps.Scale.Min, c.deps.Scale.Max))
	}
	if q, ok := c.CurrentQuestion(); ok && questionID != 0 && questionID != q.ID {
		return apperrors.NewValidation("questionId", fmt.Sprintf("expected answer for question %d", q.ID))
	}

	if err := c.apply(Answer{Value: value}); err != nil {
		return err
	}
	if c.snap.State != model.SessionAnalyzing {
		return nil
	}
	return c.analyze(ctx)
}

func (c *Controller) analyze(ctx context.Context) error {
	log := c.deps.Logger.With(zap.String("sessionId", c.snap.ID))

	result, err := c.deps.Analyzer.Analyze(ctx, c.snap.Scores.Clone())
	if err == nil && result == nil {
		err = apperrors.NewMalformed("empty analysis result", nil)
	}
	if err != nil {
		if !apperrors.IsAnalysis(err) {
			err = apperrors.NewUnavailable(err)
		}
		log.Warn("analysis failed, returning to intro", zap.Error(err))
		if ferr := c.apply(AnalysisFailed{}); ferr != nil {
			return ferr
		}
		return err
	}

	log.Debug("analysis complete", zap.String("code", result.TopTwoCode))
	return c.apply(AnalysisSucceeded{Result: result})
}

// SubmitProfile validates the profile, builds the record and appends it. The
// session reaches result only after the append succeeds; on a storage error
// it stays in profile_entry so the submission can be retried. A duplicate of
// the reserved id means an earlier attempt already stored the record.
func (c *Controller) SubmitProfile(ctx context.Context, profile model.UserProfile) (*model.StorageRecord, error) {
	if c.snap.State != model.SessionProfileEntry {
		return nil, invalid(c.snap.State, ProfileCommitted{})
	}
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)
	profile.Phone = strings.TrimSpace(profile.Phone)
	if err := c.validateProfile(profile); err != nil {
		return nil, err
	}

	c.ReserveRecordID()
	record := c.buildRecord(profile)
	if err := c.deps.Store.Append(ctx, record); err != nil {
		if apperrors.CodeOf(err) != apperrors.CodeStorageDuplicate {
			c.deps.Logger.Error("failed to persist record",
				zap.String("sessionId", c.snap.ID),
				zap.String("recordId", record.ID),
				zap.Error(err))
			if !apperrors.IsStorage(err) {
				err = apperrors.NewStorageWrite("append", err)
			}
			return nil, err
		}
		// An earlier attempt stored the record but its snapshot was not saved.
		c.deps.Logger.Info("record already stored, committing session",
			zap.String("sessionId", c.snap.ID),
			zap.String("recordId", record.ID))
	}

	if err := c.apply(ProfileCommitted{Profile: profile, RecordID: record.ID}); err != nil {
		return nil, err
	}
	return record, nil
}

// ReserveRecordID fixes the id of the record the next SubmitProfile appends.
// It reports whether a new id was assigned; the caller must save the snapshot
// before appending so a retried submission cannot store a second record.
func (c *Controller) ReserveRecordID() bool {
	if c.snap.State != model.SessionProfileEntry || c.snap.PendingRecordID != "" {
		return false
	}
	c.snap.PendingRecordID = c.deps.IDs.NewID()
	return true
}

func (c *Controller) buildRecord(profile model.UserProfile) *model.StorageRecord {
	return &model.StorageRecord{
		UserProfile: profile,
		ID:          c.snap.PendingRecordID,
		Date:        c.deps.Clock.Now().UTC().Format(time.RFC3339),
		RiasecCode:  c.snap.Analysis.TopTwoCode,
		Scores:      c.snap.Scores.Clone(),
	}
}

func (c *Controller) validateProfile(p model.UserProfile) error {
	if err := c.deps.Validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.NewValidation(jsonField(fe.Field()), fmt.Sprintf("failed %q check", fe.Tag()))
		}
		return apperrors.NewValidation("", err.Error())
	}
	if !p.Consent {
		return apperrors.NewValidation("consent", "consent is required")
	}
	return nil
}

func (c *Controller) apply(ev Event) error {
	next, err := Next(c.snap, ev, c.deps.Questions)
	if err != nil {
		return err
	}
	c.snap = next
	return nil
}

func jsonField(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
