package handler

import (
	"github.com/schedulemanager/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	session *service.Session
	prefs   *service.LoginPreferenceStore
}

// NewAPI constructs a handler set around the process-wide session.
func NewAPI(session *service.Session, prefs *service.LoginPreferenceStore) *API {
	return &API{
		session: session,
		prefs:   prefs,
	}
}

// Session exposes the underlying session for shutdown paths.
func (a *API) Session() *service.Session {
	return a.session
}
