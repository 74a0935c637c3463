package domain

import "github.com/x-xyz/oev-searcher/base/ctx"

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type Notification struct {
	Severity Severity
	Title    string
	Fields   map[string]string
}

// Notifier escalates outcomes that need a human
type Notifier interface {
	Notify(c ctx.Ctx, n Notification) error
}
