package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

type Servicer interface {
	Register(ctx context.Context, c Credentials) (int, error)
	Authenticate(ctx context.Context, c Credentials) (User, error)
	Verify(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type Service struct {
	repo      Repository
	tokens    TokenStore
	mailer    Sender
	validator Validator
	publicURL string
	log       *slog.Logger
}

func NewService(repo Repository, tokens TokenStore, mailer Sender, validator Validator, publicURL string, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		mailer:    mailer,
		validator: validator,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log.With("component", "user_service"),
	}
}

// Register creates an unverified user and mails a verification link.
// A failed mail does not fail the registration.
func (s *Service) Register(ctx context.Context, c Credentials) (int, error) {
	c.Email = normalizeEmail(c.Email)
	if err := s.validator.ValidateCredentials(c); err != nil {
		s.log.Debug("validation failed", "email", c.Email, "error", err)
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.repo.Create(ctx, c.Email, string(hash))
	if err != nil {
		return 0, err
	}

	token, err := s.tokens.Issue(ctx, PurposeVerify, userID, verifyTokenTTL)
	if err != nil {
		s.log.Error("failed to issue verification token", "user_id", userID, "error", err)
		return userID, nil
	}

	sent := s.send(ctx, c.Email, "Подтвердите email",
		fmt.Sprintf(`<p>Подтвердите адрес: <a href="%s">%s</a></p>`, s.link("verify", token), s.link("verify", token)))
	s.log.Info("user registered", "user_id", userID, "verification_sent", sent)

	return userID, nil
}

func (s *Service) Authenticate(ctx context.Context, c Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(c.Email))
	if err != nil {
		return User{}, ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(c.Password)); err != nil {
		return User{}, ErrInvalidAuth
	}

	return user, nil
}

// Verify consumes a verification token and marks its owner verified
func (s *Service) Verify(ctx context.Context, token string) error {
	userID, err := s.tokens.Consume(ctx, PurposeVerify, token)
	if err != nil {
		return ErrTokenInvalid
	}

	if err := s.repo.MarkVerified(ctx, userID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	s.log.Info("email verified", "user_id", userID)
	return nil
}

// RequestPasswordReset mails a reset link. Unknown emails are not reported to the caller.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Debug("password reset for unknown email", "email", email)
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, PurposeReset, user.ID, resetTokenTTL)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	sent := s.send(ctx, email, "Сброс пароля",
		fmt.Sprintf(`<p>Чтобы задать новый пароль, перейдите по ссылке: <a href="%s">%s</a></p>`, s.link("reset", token), s.link("reset", token)))
	s.log.Info("password reset requested", "user_id", user.ID, "reset_sent", sent)

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if err := s.validator.ValidatePassword(password); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	userID, err := s.tokens.Consume(ctx, PurposeReset, token)
	if err != nil {
		return ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("password reset", "user_id", userID)
	return nil
}

func (s *Service) send(ctx context.Context, to, subject, body string) bool {
	if s.mailer == nil {
		return false
	}
	if err := s.mailer.Send(ctx, []string{to}, subject, body); err != nil {
		s.log.Warn("failed to send email", "to", to, "subject", subject, "error", err)
		return false
	}
	return true
}

func (s *Service) link(action, token string) string {
	return s.publicURL + "/" + action + "?token=" + url.QueryEscape(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
