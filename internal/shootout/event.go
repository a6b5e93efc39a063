package shootout

import "time"

// EventType classifies an Event.
type EventType string

const (
	EmulatorStarted EventType = "emulator-started"
	EmulatorFailed  EventType = "emulator-failed"
	TestSkipped     EventType = "test-skipped"
	TestFinished    EventType = "test-finished"
	RunFinished     EventType = "run-finished"
)

// Event reports progress of a run.
type Event struct {
	Type     EventType `json:"type"`
	Time     time.Time `json:"time"`
	Emulator string    `json:"emulator,omitempty"`
	Test     string    `json:"test,omitempty"`
	Verdict  string    `json:"verdict,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// EventSink receives events. Publish must not block.
type EventSink interface {
	Publish(Event)
}
