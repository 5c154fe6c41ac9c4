package transaction

import "time"

// Action names a lifecycle operation.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionComplete  Action = "complete"
	ActionCancel    Action = "cancel"
	ActionRestore   Action = "restore"
	ActionArchive   Action = "archive"
	ActionUnarchive Action = "unarchive"
	ActionDelete    Action = "delete"
)

// Outcome labels recorded for each action.
const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Recorder receives one call per lifecycle action attempt.
type Recorder interface {
	RecordTransition(action Action, result string)
}

type nopRecorder struct{}

func (nopRecorder) RecordTransition(Action, string) {}

type Option func(*Service)

// WithClock overrides the time source used for dates and archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}
