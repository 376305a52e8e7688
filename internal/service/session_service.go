package service

import (
	"context"
	"errors"
	"sync"

	"careervision/internal/cache"
	"careervision/internal/metrics"
	"careervision/internal/model"
	"careervision/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session is busy")
)

// SessionService loads a session snapshot, runs one controller action on it
// and saves the result. Actions on the same session never overlap.
type SessionService struct {
	cache  cache.SessionCache
	deps   session.Deps
	logger *zap.Logger

	mu       sync.Mutex
	inflight map[string]struct{} // ids with an action running
}

// NewSessionService creates a session service
func NewSessionService(sessions cache.SessionCache, deps session.Deps, logger *zap.Logger) *SessionService {
	deps.Logger = logger
	return &SessionService{
		cache:    sessions,
		deps:     deps,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Create starts a new session at the intro screen
func (s *SessionService) Create(ctx context.Context) (*model.Session, error) {
	sess := model.NewSession(uuid.New().String())
	if err := s.cache.Set(ctx, sess); err != nil {
		return nil, err
	}
	s.logger.Debug("session created", zap.String("sessionId", sess.ID))
	return sess, nil
}

// Get returns the current snapshot
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	sess, err := s.cache.Get(ctx, id)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrSessionNotFound
	}
	return sess, err
}

// Start moves the session from intro into the survey
func (s *SessionService) Start(ctx context.Context, id string) (*model.Session, error) {
	sess, err := s.run(ctx, id, func(c *session.Controller) error {
		return c.Start()
	})
	if err == nil {
		metrics.SessionsStarted.Inc()
	}
	return sess, err
}

// Restart resets the session to the first question
func (s *SessionService) Restart(ctx context.Context, id string) (*model.Session, error) {
	sess, err := s.run(ctx, id, func(c *session.Controller) error {
		return c.Restart()
	})
	if err == nil {
		metrics.SessionsStarted.Inc()
	}
	return sess, err
}

// Answer records one answer. The last answer runs the analysis, which is not
// cancelled if the caller goes away.
func (s *SessionService) Answer(ctx context.Context, id string, questionID, value int) (*model.Session, error) {
	return s.run(ctx, id, func(c *session.Controller) error {
		return c.Answer(context.WithoutCancel(ctx), questionID, value)
	})
}

// SubmitProfile commits the record and moves the session to result
func (s *SessionService) SubmitProfile(ctx context.Context, id string, profile model.UserProfile) (*model.Session, *model.StorageRecord, error) {
	var record *model.StorageRecord
	sess, err := s.run(ctx, id, func(c *session.Controller) error {
		// The reserved id is saved before the append so a retry reuses it.
		if c.ReserveRecordID() {
			snap := c.Snapshot()
			if err := s.cache.Set(context.WithoutCancel(ctx), &snap); err != nil {
				return err
			}
		}
		var err error
		record, err = c.SubmitProfile(context.WithoutCancel(ctx), profile)
		return err
	})
	if err == nil {
		metrics.SessionsCompleted.Inc()
	}
	return sess, record, err
}

// Delete drops the session snapshot, including any submitted profile.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if !s.acquire(id) {
		return ErrSessionBusy
	}
	defer s.release(id)

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("session deleted", zap.String("sessionId", id))
	return nil
}

// run serializes fn per session id. The snapshot is saved whatever fn returns,
// since a failed analysis still moves the session.
func (s *SessionService) run(ctx context.Context, id string, fn func(c *session.Controller) error) (*model.Session, error) {
	if !s.acquire(id) {
		return nil, ErrSessionBusy
	}
	defer s.release(id)

	snap, err := s.cache.Get(ctx, id)
	if errors.Is(err, cache.ErrMiss) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	ctrl := session.NewController(*snap, s.deps)
	actionErr := fn(ctrl)

	next := ctrl.Snapshot()
	if err := s.cache.Set(context.WithoutCancel(ctx), &next); err != nil {
		s.logger.Error("failed to save session", zap.String("sessionId", id), zap.Error(err))
		if actionErr == nil {
			return nil, err
		}
	}
	return &next, actionErr
}

// acquire marks id busy. It fails instead of waiting when an action is running.
func (s *SessionService) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inflight[id]; busy {
		return false
	}
	s.inflight[id] = struct{}{}
	return true
}

func (s *SessionService) release(id string) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}
