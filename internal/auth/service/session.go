package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hogarcare/hogar/internal/auth/domain"
	"github.com/hogarcare/hogar/internal/auth/store"
	"github.com/hogarcare/hogar/pkg/cryptox"
	"github.com/hogarcare/hogar/pkg/jwtx"
	"github.com/hogarcare/hogar/pkg/slogx"
)

// DefaultSuspiciousThreshold is the active-session count at which a user
// shows up in the suspicious-session report.
const DefaultSuspiciousThreshold = 5

// DefaultStaleSessionAge is how long a session may sit idle while still
// active before the suspicious-session report flags it.
const DefaultStaleSessionAge = 24 * time.Hour

// AuthenticatedSession is what a successful access-token validation yields:
// the live user, their role and the backing session row.
type AuthenticatedSession struct {
	User    domain.User
	Role    domain.Role
	Session domain.Session
}

// SessionService validates access tokens and manages session visibility and
// revocation. Expiry is lazy: nothing sweeps sessions in the background, the
// first read that observes an expired-but-active row flips it inactive.
type SessionService struct {
	store     store.Store
	verifier  *jwtx.Verifier
	audit     AuditSink
	threshold int64
}

func NewSessionService(st store.Store, verifier *jwtx.Verifier, audit AuditSink, suspiciousThreshold int64) *SessionService {
	if suspiciousThreshold <= 0 {
		suspiciousThreshold = DefaultSuspiciousThreshold
	}
	if audit == nil {
		audit = NopAuditSink{}
	}
	return &SessionService{store: st, verifier: verifier, audit: audit, threshold: suspiciousThreshold}
}

// ValidateAccessToken is the single gate every authenticated request passes
// through. A token is only good when its signature, kind, claims and backing
// session row all agree. Challenge and refresh tokens fail the kind check.
func (s *SessionService) ValidateAccessToken(ctx context.Context, rawToken string) (AuthenticatedSession, error) {
	claims, err := s.verifier.VerifyKind(rawToken, jwtx.KindAccess)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			// The signed expiry matches the session row's. Flip the row now
			// rather than leaving it for the next maintenance run.
			s.invalidateByHash(ctx, cryptox.FingerprintToken(rawToken))
			return AuthenticatedSession{}, ErrSessionExpired
		}
		return AuthenticatedSession{}, ErrInvalidToken
	}

	sess, err := s.store.Sessions().GetActiveByTokenHash(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return AuthenticatedSession{}, ErrInvalidToken
		}
		return AuthenticatedSession{}, fmt.Errorf("look up session: %w", err)
	}

	userID, err := claims.UserID()
	if err != nil || sess.UserID != userID || sess.SID != claims.SID {
		return AuthenticatedSession{}, ErrInvalidToken
	}

	now := time.Now().UTC()
	if sess.Expired(now) {
		if err := s.store.Sessions().Invalidate(ctx, sess.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return AuthenticatedSession{}, fmt.Errorf("invalidate expired session: %w", err)
		}
		return AuthenticatedSession{}, ErrSessionExpired
	}

	user, err := s.store.Users().GetByID(ctx, sess.UserID)
	if err != nil {
		return AuthenticatedSession{}, fmt.Errorf("look up user: %w", err)
	}
	if !user.Active {
		if err := s.store.Sessions().Invalidate(ctx, sess.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Warn("invalidate session of inactive user failed", "session_id", sess.ID, "err", err)
		}
		return AuthenticatedSession{}, ErrInvalidToken
	}

	role, err := s.store.Roles().GetByID(ctx, user.RoleID)
	if err != nil {
		return AuthenticatedSession{}, fmt.Errorf("load role: %w", err)
	}

	if err := s.store.Sessions().TouchActivity(ctx, sess.ID, now); err != nil && !errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Warn("touch session activity failed", "session_id", sess.ID, "err", err)
	}

	return AuthenticatedSession{User: user, Role: role, Session: sess}, nil
}

// ListSessions returns the user's active sessions, newest activity first,
// marking the one backing the current request.
func (s *SessionService) ListSessions(ctx context.Context, userID, currentSessionID int64) ([]domain.SessionInfo, error) {
	sessions, err := s.store.Sessions().ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	staleCutoff := time.Now().UTC().Add(-DefaultStaleSessionAge)
	infos := make([]domain.SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		infos = append(infos, sessionInfo(sess, sess.ID == currentSessionID, staleCutoff))
	}
	return infos, nil
}

// RevokeSession invalidates one of the caller's own sessions. Revoking a
// session that belongs to someone else is forbidden regardless of role.
func (s *SessionService) RevokeSession(ctx context.Context, userID, sessionID int64) error {
	sess, err := s.store.Sessions().GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("look up session: %w", err)
	}
	if sess.UserID != userID {
		return ErrForbidden
	}

	if err := s.store.Sessions().Invalidate(ctx, sessionID); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("invalidate session: %w", err)
	}

	s.audit.Record(ctx, userID, domain.AuditSessionRevoked, "sessions", sessionID, "session revoked by owner")
	return nil
}

// RevokeAllForUser is the admin hammer: it invalidates every active session
// of the target user and returns how many were flipped.
func (s *SessionService) RevokeAllForUser(ctx context.Context, actorID, targetUserID int64) (int64, error) {
	if _, err := s.store.Users().GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("look up user: %w", err)
	}

	n, err := s.store.Sessions().InvalidateAllForUser(ctx, targetUserID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}

	s.audit.Record(ctx, actorID, domain.AuditSessionRevoked, "sessions", targetUserID,
		fmt.Sprintf("admin revoked %d sessions of user %d", n, targetUserID))
	return n, nil
}

// Suspicious reports users whose concurrent active session count meets the
// configured threshold, and users holding sessions idle past the staleness
// window, with their session metadata attached.
func (s *SessionService) Suspicious(ctx context.Context) ([]domain.SuspiciousUser, error) {
	staleCutoff := time.Now().UTC().Add(-DefaultStaleSessionAge)

	counts, err := s.store.Sessions().ListUserActiveCounts(ctx, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	staleCounts, err := s.store.Sessions().ListUserStaleCounts(ctx, staleCutoff)
	if err != nil {
		return nil, fmt.Errorf("count stale sessions: %w", err)
	}

	staleByUser := make(map[int64]int64, len(staleCounts))
	for _, c := range staleCounts {
		staleByUser[c.UserID] = c.Count
	}

	flagged := counts
	seen := make(map[int64]bool, len(counts))
	for _, c := range counts {
		seen[c.UserID] = true
	}
	for _, c := range staleCounts {
		if !seen[c.UserID] {
			flagged = append(flagged, c)
		}
	}

	report := make([]domain.SuspiciousUser, 0, len(flagged))
	for _, c := range flagged {
		sessions, err := s.store.Sessions().ListActiveForUser(ctx, c.UserID)
		if err != nil {
			return nil, fmt.Errorf("list sessions for user %d: %w", c.UserID, err)
		}

		infos := make([]domain.SessionInfo, 0, len(sessions))
		for _, sess := range sessions {
			infos = append(infos, sessionInfo(sess, false, staleCutoff))
		}

		report = append(report, domain.SuspiciousUser{
			UserID:        c.UserID,
			Email:         c.Email,
			SessionCount:  int64(len(sessions)),
			StaleSessions: staleByUser[c.UserID],
			Sessions:      infos,
		})
	}
	return report, nil
}

func (s *SessionService) invalidateByHash(ctx context.Context, tokenHash string) {
	sess, err := s.store.Sessions().GetActiveByTokenHash(ctx, tokenHash)
	if err != nil {
		return
	}
	if err := s.store.Sessions().Invalidate(ctx, sess.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Warn("lazy session invalidation failed", "session_id", sess.ID, "err", err)
	}
}

func sessionInfo(sess domain.Session, current bool, staleCutoff time.Time) domain.SessionInfo {
	return domain.SessionInfo{
		ID:           sess.ID,
		IPAddress:    sess.IPAddress,
		UserAgent:    sess.UserAgent,
		CreatedAt:    sess.CreatedAt,
		LastActivity: sess.LastActivity,
		ExpiresAt:    sess.ExpiresAt,
		Current:      current,
		Stale:        sess.LastActivity.Before(staleCutoff),
	}
}
