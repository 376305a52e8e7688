package main

import (
	"careervision/internal/app"
	"careervision/internal/service"
	"careervision/internal/session"
)

func sessionDeps(a *app.App, records *service.RecordService) session.Deps {
	return session.Deps{
		Questions: a.Catalog.Questions(),
		Scale:     a.Scale(),
		Analyzer:  a.Analyzer,
		Store:     records,
		IDs:       session.UUIDGenerator{},
		Clock:     session.SystemClock{},
	}
}
