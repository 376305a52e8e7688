package cache

import (
	"context"
	"time"

	"careervision/internal/model"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type memorySessionCache struct {
	lru *expirable.LRU[string, model.Session]
}

// NewMemorySessionCache keeps up to size snapshots in process, each for ttl.
func NewMemorySessionCache(size int, ttl time.Duration) SessionCache {
	return &memorySessionCache{
		lru: expirable.NewLRU[string, model.Session](size, nil, ttl),
	}
}

func (c *memorySessionCache) Set(_ context.Context, session *model.Session) error {
	c.lru.Add(session.ID, cloneSession(*session))
	return nil
}

func (c *memorySessionCache) Get(_ context.Context, id string) (*model.Session, error) {
	s, ok := c.lru.Get(id)
	if !ok {
		return nil, ErrMiss
	}
	out := cloneSession(s)
	return &out, nil
}

func (c *memorySessionCache) Delete(_ context.Context, id string) error {
	c.lru.Remove(id)
	return nil
}

// cloneSession detaches the maps so cached values cannot be changed by callers
func cloneSession(s model.Session) model.Session {
	s.Answers = s.Answers.Clone()
	s.Scores = s.Scores.Clone()
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}
	return s
}
