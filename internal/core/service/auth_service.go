package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/logica-uic/contest-backend/internal/core/domain"
	"github.com/logica-uic/contest-backend/internal/core/ports"
	"github.com/logica-uic/contest-backend/pkg/metrics"
	"github.com/logica-uic/contest-backend/pkg/otpgen"
	"github.com/logica-uic/contest-backend/pkg/passhash"
	"github.com/logica-uic/contest-backend/pkg/sessiontok"
)

// codeTTLWindows bounds how long a delivered code stays redeemable,
// expressed in OTP windows. Ten 30-second windows gives users five minutes
// to read the email before the pending hash goes stale.
const codeTTLWindows = 10

// ResetThrottle abstracts the per-window send deduplication (Redis). A
// throttle outage never blocks the recovery flow; failures are logged and
// the send proceeds.
type ResetThrottle interface {
	AlreadySent(ctx context.Context, role, email string, window int64) (bool, error)
	MarkSent(ctx context.Context, role, email string, window int64) error
}

// AuthService orchestrates registration, login, and the two-phase
// credential-recovery flow over the role-partitioned account store.
type AuthService struct {
	repo     ports.AccountRepository
	sender   ports.CodeSender
	tokens   *sessiontok.Issuer
	codes    otpgen.Generator
	throttle ResetThrottle
	log      zerolog.Logger

	// now is swappable in tests.
	now nowFunc
}

func NewAuthService(
	repo ports.AccountRepository,
	sender ports.CodeSender,
	tokens *sessiontok.Issuer,
	codes otpgen.Generator,
	throttle ResetThrottle,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:     repo,
		sender:   sender,
		tokens:   tokens,
		codes:    codes,
		throttle: throttle,
		log:      log,
		now:      utcNow,
	}
}

// Register creates a participant account with a hashed password. Registering
// an email that already exists is not an error: the existing record's
// non-secret fields are returned with AlreadyExisted set.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}

	existing, err := s.repo.FindByEmail(ctx, domain.RoleParticipant, input.Email)
	if err == nil {
		metrics.RegistrationsTotal.WithLabelValues("already_exists").Inc()
		s.log.Info().Str("email", input.Email).Msg("registration replay for existing account")
		return &ports.RegisterResult{Account: existing, AlreadyExisted: true}, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	hash, err := passhash.Hash(input.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, domain.RoleParticipant, &domain.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Lost the race against a concurrent registration: fall back to the
		// idempotent-read path.
		if errors.Is(err, domain.ErrAccountExists) {
			if existing, ferr := s.repo.FindByEmail(ctx, domain.RoleParticipant, input.Email); ferr == nil {
				metrics.RegistrationsTotal.WithLabelValues("already_exists").Inc()
				return &ports.RegisterResult{Account: existing, AlreadyExisted: true}, nil
			}
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("email", input.Email).Msg("failed to create account")
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("email", created.Email).Msg("participant registered")
	return &ports.RegisterResult{Account: created}, nil
}

// Login verifies credentials and issues a short-lived session token. Unknown
// account and wrong password collapse into the same ErrInvalidCredentials so
// responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleParticipant
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	account, err := s.repo.FindByEmail(ctx, role, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	ok, err := passhash.Verify(input.Password, account.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("email", input.Email).Msg("stored password hash unreadable")
		return nil, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(account.Email, account.Name, role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	// Best-effort bookkeeping: a failed marker write must not fail the login.
	if err := s.repo.RecordSessionMarker(ctx, role, account.Email, claims.SessionID); err != nil {
		s.log.Warn().Err(err).Str("email", account.Email).Msg("failed to record session marker")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("email", account.Email).Str("role", role).Msg("login succeeded")
	return &ports.LoginResult{
		Token:     token,
		Name:      account.Name,
		Role:      role,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// RequestPasswordReset starts the recovery flow: derives the current window's
// one-time code, persists its hash on the role-scoped account, and emails the
// plaintext code. When the email fails after the hash was persisted the
// account stays in the pending state and ErrNotificationFailed is returned;
// a retry in a later window regenerates a fresh code.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email, role string) error {
	if email == "" {
		return domain.ErrValidation
	}
	if !domain.ValidRole(role) {
		metrics.ResetRequestsTotal.WithLabelValues("invalid_role").Inc()
		return domain.ErrInvalidRole
	}

	account, err := s.repo.FindByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			metrics.ResetRequestsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	now := s.now()
	window := s.codes.Window(now)

	// Within one window the code is identical, so a duplicate request needs
	// no second email — but only while the pending hash is still in place. A
	// reset completed moments ago cleared it, and then reporting Sent without
	// persisting a fresh hash would leave nothing to redeem. Throttle
	// failures are logged and ignored.
	if account.PendingReset != nil {
		if sent, err := s.throttle.AlreadySent(ctx, role, email, window); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("reset throttle check failed, sending anyway")
		} else if sent {
			metrics.ResetRequestsTotal.WithLabelValues("throttled").Inc()
			s.log.Debug().Str("email", email).Int64("window", window).Msg("duplicate reset request in same window")
			return nil
		}
	}

	code, err := s.codes.Generate(now)
	if err != nil {
		metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		return err
	}
	codeHash, err := passhash.Hash(code)
	if err != nil {
		metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := s.repo.SetPendingReset(ctx, role, email, domain.PendingReset{
		CodeHash: codeHash,
		IssuedAt: now,
	}); err != nil {
		metrics.ResetRequestsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("email", email).Msg("failed to persist pending reset")
		return err
	}

	start := time.Now()
	if err := s.sender.SendResetCode(ctx, email, code); err != nil {
		metrics.ResetRequestsTotal.WithLabelValues("notification_failed").Inc()
		s.log.Error().Err(err).Str("email", email).Msg("one-time code delivery failed")
		return domain.ErrNotificationFailed
	}
	metrics.CodeSendDuration.Observe(time.Since(start).Seconds())

	if err := s.throttle.MarkSent(ctx, role, email, window); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to mark reset window")
	}

	metrics.ResetRequestsTotal.WithLabelValues("sent").Inc()
	s.log.Info().Str("email", email).Str("role", role).Msg("reset code sent")
	return nil
}

// ResetPassword completes the recovery flow. A pending code older than
// codeTTLWindows windows is rejected as expired even if it would still
// match. The password write and the
// pending-reset clear happen in a single conditional store update keyed on
// the code hash this call verified; a concurrent reset makes that update
// miss and surfaces ErrPartialReset, which the caller retries from scratch.
func (s *AuthService) ResetPassword(ctx context.Context, input ports.ResetPasswordInput) error {
	if input.Email == "" || input.NewPassword == "" || input.Code == "" {
		return domain.ErrValidation
	}
	if !domain.ValidRole(input.Role) {
		return domain.ErrInvalidRole
	}

	account, err := s.repo.FindByEmail(ctx, input.Role, input.Email)
	if err != nil {
		metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
		return err
	}
	if account.PendingReset == nil {
		metrics.ResetCompletionsTotal.WithLabelValues("no_reset_in_progress").Inc()
		return domain.ErrNoResetInProgress
	}
	if s.now().Sub(account.PendingReset.IssuedAt) > codeTTLWindows*s.codes.Period() {
		metrics.ResetCompletionsTotal.WithLabelValues("expired").Inc()
		return domain.ErrCodeExpired
	}

	ok, err := passhash.Verify(input.Code, account.PendingReset.CodeHash)
	if err != nil {
		metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("email", input.Email).Msg("stored code hash unreadable")
		return err
	}
	if !ok {
		metrics.ResetCompletionsTotal.WithLabelValues("invalid_code").Inc()
		return domain.ErrInvalidCode
	}

	newHash, err := passhash.Hash(input.NewPassword)
	if err != nil {
		metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := s.repo.CompleteReset(ctx, input.Role, input.Email, account.PendingReset.CodeHash, newHash); err != nil {
		if errors.Is(err, domain.ErrPartialReset) {
			metrics.ResetCompletionsTotal.WithLabelValues("conflict").Inc()
			s.log.Warn().Str("email", input.Email).Msg("reset state changed mid-flight")
		} else {
			metrics.ResetCompletionsTotal.WithLabelValues("error").Inc()
			s.log.Error().Err(err).Str("email", input.Email).Msg("failed to complete reset")
		}
		return err
	}

	metrics.ResetCompletionsTotal.WithLabelValues("reset").Inc()
	s.log.Info().Str("email", input.Email).Str("role", input.Role).Msg("password reset completed")
	return nil
}

// ListParticipants returns the participant directory (non-secret fields).
func (s *AuthService) ListParticipants(ctx context.Context) ([]domain.Account, error) {
	return s.repo.ListParticipants(ctx)
}
