package domain

import "time"

// AuditAction classifies audit trail entries.
type AuditAction string

const (
	AuditLogin            AuditAction = "LOGIN"
	AuditLogout           AuditAction = "LOGOUT"
	AuditTwoFactorEnable  AuditAction = "2FA_ENABLE"
	AuditTwoFactorDisable AuditAction = "2FA_DISABLE"
	AuditResetRequested   AuditAction = "PASSWORD_RESET_REQUESTED"
	AuditResetCompleted   AuditAction = "PASSWORD_RESET_COMPLETED"
	AuditSessionRevoked   AuditAction = "SESSION_REVOKED"
	AuditCleanupRun       AuditAction = "MAINTENANCE_CLEANUP"
	AuditBootstrap        AuditAction = "BOOTSTRAP"
)

// AuditEntry mirrors the append-only digital_records table.
type AuditEntry struct {
	ID          int64
	UserID      int64
	Action      AuditAction
	TableName   string
	RecordID    int64
	Description string
	CreatedAt   time.Time
}
