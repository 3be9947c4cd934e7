package domain

import "time"

// TwoFactorCredential is the one-to-one TOTP enrolment for a user. Enabled
// only flips true after the user has proven possession of the secret once.
type TwoFactorCredential struct {
	ID         int64
	UserID     int64
	Secret     string // base32 TOTP secret
	Enabled    bool
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TwoFactorSetup is returned once at setup time; the secret and raw codes are
// never retrievable afterwards.
type TwoFactorSetup struct {
	Secret          string   `json:"secret"`
	ProvisioningURI string   `json:"provisioning_uri"`
	BackupCodes     []string `json:"backup_codes"`
}
