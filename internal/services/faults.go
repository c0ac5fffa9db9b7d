package services

import (
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// reportReconciliationFault records a resident/account mismatch that needs
// manual repair. ERROR records are persisted to system_logs by the database
// log handler, and forwarded to Sentry when it is configured.
func reportReconciliationFault(msg string, args ...any) {
	slog.Error(msg, append([]any{"action", "reconciliation_fault"}, args...)...)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("action", "reconciliation_fault")
		sentry.CaptureMessage(msg)
	})
}
