package lead

import (
	"context"
	"log/slog"

	"github.com/JonMunkholm/leadlist/internal/logging"
)

// AuditAction identifies a committed store mutation.
type AuditAction string

const (
	ActionCreate AuditAction = "lead_create"
	ActionUpdate AuditAction = "lead_update"
	ActionDelete AuditAction = "lead_delete"
	ActionImport AuditAction = "lead_import"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionDelete, ActionImport:
		return SeverityHigh
	case ActionCreate:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// LogAudit writes one audit entry for action to the structured log.
// Extra attributes are appended after the standard ones.
func LogAudit(ctx context.Context, action AuditAction, rec Record, extra ...any) {
	args := []any{
		slog.String("action", string(action)),
		slog.String("severity", string(determineSeverity(action))),
	}
	if rec.ID != "" {
		args = append(args,
			slog.String("lead_id", rec.ID),
			slog.String("company", rec.CompanyName),
		)
	}
	if ip := IPAddressFromContext(ctx); ip != "" {
		args = append(args, slog.String("ip", ip))
	}
	if ua := UserAgentFromContext(ctx); ua != "" {
		args = append(args, slog.String("user_agent", ua))
	}
	args = append(args, extra...)
	logging.FromContext(ctx).Info("audit", args...)
}
