package shootout

import "go.uber.org/zap/zaptest/observer"

type observerLogs struct {
	*observer.ObservedLogs
}

func (l *observerLogs) count(msg string) int {
	return l.FilterMessage(msg).Len()
}

func (l *observerLogs) containing(s string) int {
	return l.FilterMessageSnippet(s).Len()
}
