package booking

import "log"

// Severity classifies a toast notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Notifier is the single user-facing notification channel.  No structured
// error codes cross it, only human-readable text.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

// LogNotifier writes toasts to the standard logger.  It is the default when
// no UI channel is attached.
type LogNotifier struct{}

func (LogNotifier) Notify(title, message string, severity Severity) {
	log.Printf("toast [%s] %s: %s", severity, title, message)
}
