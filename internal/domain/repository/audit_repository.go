package repository

import "context"

// AuditEntry is a best-effort record of a security-relevant action.
type AuditEntry struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}

// AuditRepository persists audit entries. Failures are logged, never surfaced
// to the caller of the original request.
type AuditRepository interface {
	Record(ctx context.Context, e AuditEntry) error
}
