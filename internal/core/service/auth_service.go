package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/arclab/arclab-api/internal/api/metrics"
	"github.com/arclab/arclab-api/internal/core/domain"
	"github.com/arclab/arclab-api/internal/core/ports"
)

// MailEnqueuer abstracts the async mail dispatcher.
type MailEnqueuer interface {
	Enqueue(mail ports.OTPMail)
}

// AuthService implements the registration, verification, login, and password
// reset state machine. A user row and a pending row for the same email are
// mutually exclusive in steady state: Verify creates one and deletes the other.
type AuthService struct {
	users     ports.UserRepository
	pendings  ports.PendingRegistrationRepository
	resets    ports.PasswordResetRepository
	mail      MailEnqueuer
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	pendings ports.PendingRegistrationRepository,
	resets ports.PasswordResetRepository,
	mail MailEnqueuer,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		pendings:  pendings,
		resets:    resets,
		mail:      mail,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		logger:    logger,
	}
}

// Register creates a PendingRegistration with a fresh OTP and queues the code
// for delivery. The email must not already belong to a verified user or an
// in-flight registration.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrAlreadyRegistered
	} else if err != domain.ErrUserNotFound {
		return err
	}
	if _, err := s.pendings.FindByEmail(ctx, email); err == nil {
		return domain.ErrAlreadyRegistered
	} else if err != domain.ErrPendingNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	code, expiry := issueOTP(now)
	pending := &domain.PendingRegistration{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		OTPCode:      code,
		OTPExpiry:    expiry,
	}
	if err := s.pendings.Upsert(ctx, pending); err != nil {
		return err
	}

	s.enqueueOTPMail(email, code, ports.MailPurposeRegister)
	metrics.RegistrationsTotal.Inc()
	s.logger.Info().Str("email", email).Msg("registration pending verification")
	return nil
}

// Verify consumes the pending registration exactly once: on a matching,
// unexpired code the User row is created and the pending row deleted, so a
// replay of the same code fails with ErrPendingNotFound.
func (s *AuthService) Verify(ctx context.Context, email, code string) (*domain.User, error) {
	email = normalizeEmail(email)

	pending, err := s.pendings.FindByEmail(ctx, email)
	if err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	if err := verifyOTP(code, pending.OTPCode, pending.OTPExpiry, s.now().UTC()); err != nil {
		metrics.OTPVerificationsTotal.WithLabelValues(verifyResultLabel(err)).Inc()
		return nil, err
	}

	user := &domain.User{
		Name:         pending.Name,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		CreatedAt:    s.now().UTC(),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Cleanup, not part of the success contract: the TTL index collects
	// strays if this delete fails.
	if err := s.pendings.Delete(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to delete pending registration")
	}

	metrics.OTPVerificationsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("email", email).Str("user_id", created.ID).Msg("registration verified")
	return created, nil
}

// Resend overwrites the pending OTP with a fresh code and expiry, which
// invalidates the previous code, and queues the new one for delivery.
func (s *AuthService) Resend(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	pending, err := s.pendings.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	pending.OTPCode, pending.OTPExpiry = issueOTP(now)
	if err := s.pendings.Upsert(ctx, pending); err != nil {
		return err
	}

	s.enqueueOTPMail(email, pending.OTPCode, ports.MailPurposeResend)
	return nil
}

// Login checks credentials and mints a session token. A missing user and a
// wrong password both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Forgot starts a password reset for an existing verified user.
func (s *AuthService) Forgot(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return err
	}

	now := s.now().UTC()
	code, expiry := issueOTP(now)
	reset := &domain.PasswordReset{
		Email:     email,
		OTPCode:   code,
		OTPExpiry: expiry,
	}
	if err := s.resets.Upsert(ctx, reset); err != nil {
		return err
	}

	s.enqueueOTPMail(email, code, ports.MailPurposeReset)
	return nil
}

// Reset completes a password reset. Reusing the current password is rejected
// with ErrPasswordReuse; on success the old password stops authenticating.
func (s *AuthService) Reset(ctx context.Context, email, code, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}
	email = normalizeEmail(email)

	reset, err := s.resets.FindByEmail(ctx, email)
	if err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("not_found").Inc()
		return err
	}

	if err := verifyOTP(code, reset.OTPCode, reset.OTPExpiry, s.now().UTC()); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues(verifyResultLabel(err)).Inc()
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		metrics.PasswordResetsTotal.WithLabelValues("password_reuse").Inc()
		return domain.ErrPasswordReuse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		return err
	}

	if err := s.resets.Delete(ctx, email); err != nil {
		s.logger.Warn().Err(err).Str("email", email).Msg("failed to delete password reset record")
	}

	metrics.PasswordResetsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("email", email).Msg("password reset completed")
	return nil
}

// Profile returns the account for an authenticated user id.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) enqueueOTPMail(email, code, purpose string) {
	if s.mail == nil {
		return
	}
	s.mail.Enqueue(ports.OTPMail{
		To:      email,
		Subject: "Your ArcLab verification code",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, int(otpTTL.Minutes())),
		Purpose: purpose,
		Code:    code,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func verifyResultLabel(err error) string {
	switch err {
	case domain.ErrCodeExpired:
		return "expired"
	case domain.ErrInvalidCode:
		return "invalid"
	default:
		return "error"
	}
}
