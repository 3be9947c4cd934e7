package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/pkg/cryptox"
	"github.com/hogarcare/hogar/pkg/idx"
	"github.com/hogarcare/hogar/pkg/jwtx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// AuthService owns the login, refresh and logout flows. Sessions are persisted
// with SHA-256 fingerprints of the issued tokens; the raw tokens exist only in
// the response to the client.
type AuthService struct {
	store     store.Store
	signer    *jwtx.Signer
	verifier  *jwtx.Verifier
	twoFactor *TwoFactorService
	audit     AuditSink

	issuer       string
	accessTTL    time.Duration
	refreshTTL   time.Duration
	challengeTTL time.Duration
}

// AuthConfig carries the token issuance knobs for NewAuthService. Zero TTLs
// fall back to the package defaults.
type AuthConfig struct {
	Issuer       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	ChallengeTTL time.Duration
}

func NewAuthService(st store.Store, signer *jwtx.Signer, verifier *jwtx.Verifier, twoFactor *TwoFactorService, audit AuditSink, cfg AuthConfig) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = jwtx.DefaultAccessTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = jwtx.DefaultRefreshTokenTTL
	}
	if cfg.ChallengeTTL <= 0 {
		cfg.ChallengeTTL = jwtx.DefaultChallengeTokenTTL
	}
	if audit == nil {
		audit = NopAuditSink{}
	}

	return &AuthService{
		store:        st,
		signer:       signer,
		verifier:     verifier,
		twoFactor:    twoFactor,
		audit:        audit,
		issuer:       cfg.Issuer,
		accessTTL:    cfg.AccessTTL,
		refreshTTL:   cfg.RefreshTTL,
		challengeTTL: cfg.ChallengeTTL,
	}
}

// Login verifies email and password. Accounts without two-factor get a full
// session immediately. Accounts with two-factor enabled either verify the
// supplied code inline, or receive a short-lived challenge token that only the
// completion endpoint accepts.
//
// Every failure path returns ErrInvalidCredentials (or ErrInvalidCode when the
// password was right but the inline code was not); the distinction between
// unknown email, inactive account and wrong password lives only in the login
// attempt log.
func (s *AuthService) Login(ctx context.Context, email, password, code string, client domain.ClientInfo) (domain.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().UTC()

	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.recordAttempt(ctx, email, false, "unknown_email", client)
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		return domain.LoginResult{}, fmt.Errorf("look up user: %w", err)
	}

	if !user.Active {
		s.recordAttempt(ctx, email, false, "inactive", client)
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			s.recordAttempt(ctx, email, false, "bad_password", client)
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		return domain.LoginResult{}, fmt.Errorf("verify password: %w", err)
	}

	enabled, err := s.twoFactor.TwoFactorEnabled(ctx, user.ID)
	if err != nil {
		return domain.LoginResult{}, err
	}

	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("load role: %w", err)
	}

	if enabled {
		if code == "" {
			challenge, err := s.signer.Sign(jwtx.NewClaims(
				jwtx.KindChallenge, user.ID, user.Email, role.ID, string(role.Name),
				"", s.issuer, s.challengeTTL, now,
			))
			if err != nil {
				return domain.LoginResult{}, fmt.Errorf("sign challenge token: %w", err)
			}
			return domain.LoginResult{
				RequiresTwoFactor: true,
				ChallengeToken:    challenge,
				User:              summarize(user, role),
			}, nil
		}

		if err := s.twoFactor.VerifyCode(ctx, user.ID, code); err != nil {
			if errors.Is(err, ErrInvalidCode) {
				s.recordAttempt(ctx, email, false, "bad_2fa_code", client)
			}
			return domain.LoginResult{}, err
		}
	}

	result, err := s.issueSession(ctx, user, role, enabled, client, now)
	if err != nil {
		return domain.LoginResult{}, err
	}

	s.recordAttempt(ctx, email, true, "", client)
	return result, nil
}

// CompleteTwoFactorLogin exchanges a challenge token plus a valid TOTP or
// backup code for a full session. Access and refresh tokens presented here are
// rejected by kind.
func (s *AuthService) CompleteTwoFactorLogin(ctx context.Context, challengeToken, code string, client domain.ClientInfo) (domain.LoginResult, error) {
	claims, err := s.verifier.VerifyKind(challengeToken, jwtx.KindChallenge)
	if err != nil {
		return domain.LoginResult{}, ErrInvalidToken
	}

	userID, err := claims.UserID()
	if err != nil {
		return domain.LoginResult{}, ErrInvalidToken
	}

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.LoginResult{}, ErrInvalidToken
		}
		return domain.LoginResult{}, fmt.Errorf("look up user: %w", err)
	}
	if !user.Active {
		return domain.LoginResult{}, ErrInvalidToken
	}

	if err := s.twoFactor.VerifyCode(ctx, user.ID, code); err != nil {
		if errors.Is(err, ErrInvalidCode) {
			s.recordAttempt(ctx, user.Email, false, "bad_2fa_code", client)
		}
		return domain.LoginResult{}, err
	}

	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("load role: %w", err)
	}

	result, err := s.issueSession(ctx, user, role, true, client, time.Now().UTC())
	if err != nil {
		return domain.LoginResult{}, err
	}

	s.recordAttempt(ctx, user.Email, true, "", client)
	return result, nil
}

// Refresh rotates a session's token pair. The refresh token's own expiry
// governs here; the session row's expires_at tracks the access token and is
// extended on rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (domain.LoginResult, error) {
	claims, err := s.verifier.VerifyKind(refreshToken, jwtx.KindRefresh)
	if err != nil {
		return domain.LoginResult{}, ErrInvalidToken
	}

	sess, err := s.store.Sessions().GetActiveByRefreshHash(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.LoginResult{}, ErrInvalidToken
		}
		return domain.LoginResult{}, fmt.Errorf("look up session: %w", err)
	}

	userID, err := claims.UserID()
	if err != nil || sess.UserID != userID || sess.SID != claims.SID {
		return domain.LoginResult{}, ErrInvalidToken
	}

	user, err := s.store.Users().GetByID(ctx, sess.UserID)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("look up user: %w", err)
	}
	if !user.Active {
		return domain.LoginResult{}, ErrInvalidToken
	}

	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("load role: %w", err)
	}

	now := time.Now().UTC()
	access, refresh, err := s.signPair(user, role, sess.SID, now)
	if err != nil {
		return domain.LoginResult{}, err
	}

	err = s.store.Sessions().RotateTokens(ctx, sess.ID,
		cryptox.FingerprintToken(access), cryptox.FingerprintToken(refresh), now.Add(s.accessTTL))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.LoginResult{}, ErrInvalidToken
		}
		return domain.LoginResult{}, fmt.Errorf("rotate session tokens: %w", err)
	}

	return domain.LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         summarize(user, role),
	}, nil
}

// Logout invalidates the session bound to the presented access token. It is
// idempotent: unknown, already-revoked and garbage tokens all return nil, so
// a client can always log out.
func (s *AuthService) Logout(ctx context.Context, rawToken string, client domain.ClientInfo) error {
	sess, err := s.store.Sessions().GetActiveByTokenHash(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("look up session: %w", err)
	}

	if err := s.store.Sessions().Invalidate(ctx, sess.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("invalidate session: %w", err)
	}

	s.audit.Record(ctx, sess.UserID, domain.AuditLogout, "sessions", sess.ID,
		fmt.Sprintf("user logged out from %s", client.IP))
	return nil
}

// Profile returns the user summary for an authenticated user id.
func (s *AuthService) Profile(ctx context.Context, userID int64) (domain.UserSummary, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserSummary{}, ErrNotFound
		}
		return domain.UserSummary{}, fmt.Errorf("look up user: %w", err)
	}

	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return domain.UserSummary{}, fmt.Errorf("load role: %w", err)
	}

	return summarize(user, role), nil
}

// issueSession mints an access/refresh pair, persists the session row with
// token fingerprints, and audits the login.
func (s *AuthService) issueSession(ctx context.Context, user domain.User, role domain.Role, twoFactorVerified bool, client domain.ClientInfo, now time.Time) (domain.LoginResult, error) {
	sid := idx.New().String()

	access, refresh, err := s.signPair(user, role, sid, now)
	if err != nil {
		return domain.LoginResult{}, err
	}

	sessionID, err := s.store.Sessions().Create(ctx, domain.Session{
		UserID:            user.ID,
		SID:               sid,
		TokenHash:         cryptox.FingerprintToken(access),
		RefreshTokenHash:  cryptox.FingerprintToken(refresh),
		IPAddress:         client.IP,
		UserAgent:         client.UserAgent,
		Active:            true,
		TwoFactorVerified: twoFactorVerified,
		ExpiresAt:         now.Add(s.accessTTL),
		CreatedAt:         now,
		LastActivity:      now,
	})
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	s.audit.Record(ctx, user.ID, domain.AuditLogin, "sessions", sessionID,
		fmt.Sprintf("user logged in from %s", client.IP))

	return domain.LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         summarize(user, role),
	}, nil
}

func (s *AuthService) signPair(user domain.User, role domain.Role, sid string, now time.Time) (access, refresh string, err error) {
	access, err = s.signer.Sign(jwtx.NewClaims(
		jwtx.KindAccess, user.ID, user.Email, role.ID, string(role.Name),
		sid, s.issuer, s.accessTTL, now,
	))
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refresh, err = s.signer.Sign(jwtx.NewClaims(
		jwtx.KindRefresh, user.ID, user.Email, role.ID, string(role.Name),
		sid, s.issuer, s.refreshTTL, now,
	))
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	return access, refresh, nil
}

func (s *AuthService) recordAttempt(ctx context.Context, email string, success bool, reason string, client domain.ClientInfo) {
	err := s.store.LoginAttempts().Record(ctx, domain.LoginAttempt{
		Email:     email,
		Success:   success,
		Reason:    reason,
		IPAddress: client.IP,
		UserAgent: client.UserAgent,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("record login attempt failed", "email", email, "err", err)
	}
}

func summarize(user domain.User, role domain.Role) domain.UserSummary {
	return domain.UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(role.Name),
	}
}
