package app

import (
	"fmt"
	"log/slog"

	"github.com/hogarcare/hogar/pkg/jwtx"
)

// initSigningKeys loads the Ed25519 signing key from disk, generating one on
// first boot. Restarting the service keeps all issued tokens valid; deleting
// the key file invalidates every outstanding session at once.
func initSigningKeys(cfg Config, logger *slog.Logger) (*jwtx.Signer, *jwtx.Verifier, error) {
	pemKey, err := jwtx.LoadOrGenerateKey(cfg.SigningKey)
	if err != nil {
		return nil, nil, fmt.Errorf("load signing key: %w", err)
	}

	signer, err := jwtx.NewSigner(pemKey)
	if err != nil {
		return nil, nil, fmt.Errorf("parse signing key: %w", err)
	}

	logger.Info("signing key loaded", "path", cfg.SigningKey, "issuer", cfg.Issuer)
	return signer, jwtx.NewVerifier(signer.Public(), cfg.Issuer), nil
}
