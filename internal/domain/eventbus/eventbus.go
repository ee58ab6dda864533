// Package eventbus carries client lifecycle events between the domain
// layer and the app layer.
package eventbus

import (
	"time"

	evbus "github.com/asaskevich/EventBus"
)

// Topics published by the client domain.
const (
	TopicSessionLogin      = "session.login"
	TopicSessionLogout     = "session.logout"
	TopicSubmissionSettled = "submission.settled"
)

// SessionEvent accompanies session state transitions.
type SessionEvent struct {
	LoggedIn bool
	At       time.Time
}

// SubmissionEvent accompanies a settled certificate submission.
type SubmissionEvent struct {
	FormID  string
	Success bool
	Message string
	TxHash  string
	Fields  map[string]string
	At      time.Time
}

// New creates a synchronous event bus instance.
func New() evbus.Bus {
	return evbus.New()
}
