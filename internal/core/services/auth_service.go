package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/google/uuid"
)

const googleLoginFailed = "Google login failed. Try again later."

// authService implements AuthSvcFacade: double opt-in registration, password reset and sessions.
type authService struct {
	BaseService
	cfg      *config.Config
	users    portsrepo.UserRepositoryFacade
	tokens   portssvc.TokenSvcFacade
	mailer   gateways.Mailer
	identity gateways.IdentityVerifier
	now      func() time.Time
}

func NewAuthService(
	cfg *config.Config,
	users portsrepo.UserRepositoryFacade,
	tokens portssvc.TokenSvcFacade,
	mailer gateways.Mailer,
	identity gateways.IdentityVerifier,
) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		identity: identity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// findByEmail returns (nil, nil) when no user has the address.
func (s *authService) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up user by email")
		return nil, err
	}
	return user, nil
}

func (s *authService) RequestSignup(ctx context.Context, name, email, password string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewBadRequestError("Name is required")
	}
	email = domain.NormalizeEmail(email)
	existing, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewAppError(http.StatusBadRequest, "Email is taken", apperrors.ErrEmailTaken)
	}

	token, err := s.tokens.IssueActivationToken(ctx, domain.PendingRegistration{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	html, err := renderEmail("activation", linkEmailData{
		Link:      s.cfg.ClientURL + "/auth/account/activate/" + token,
		Expiry:    utils.HumanDuration(s.cfg.AccountActivationExpiry),
		ClientURL: s.cfg.ClientURL,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to render activation email")
		return apperrors.NewInternalServerError(apperrors.GenericMessage)
	}
	return s.send(ctx, domain.Email{
		To:      []string{email},
		From:    s.cfg.EmailFrom,
		Subject: "Account activation link",
		HTML:    html,
	})
}

func (s *authService) CompleteSignup(ctx context.Context, token string) (*domain.User, error) {
	pending, err := s.tokens.VerifyActivationToken(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.newUser(pending.Name, pending.Email, domain.AuthProviderLocal)
	if err != nil {
		return nil, err
	}
	if err := user.SetPassword(pending.Password); err != nil {
		return nil, apperrors.NewBadRequestError("Password is required")
	}

	if err := s.users.SaveUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to save activated user")
		return nil, fmt.Errorf("failed to complete signup: %w", err)
	}
	s.LogInfo(ctx, "User activated", slog.String("user_id", user.UserID))
	return user, nil
}

// newUser builds an unsaved user with a generated handle and profile link.
func (s *authService) newUser(name, email string, provider domain.AuthProvider) (*domain.User, error) {
	username, err := utils.GenerateUsername()
	if err != nil {
		return nil, fmt.Errorf("failed to generate username: %w", err)
	}
	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Name:         name,
		Email:        domain.NormalizeEmail(email),
		Profile:      domain.ProfileURL(s.cfg.ClientURL, username),
		Role:         domain.RoleRegular,
		AuthProvider: provider,
	}
	user.Touch(s.now())
	return user, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.findByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFoundError("User with that email does not exist")
	}

	token, err := s.tokens.IssueResetToken(ctx, user.UserID)
	if err != nil {
		return err
	}
	// The stored link is the source of truth; mail goes out only after it is written.
	if err := s.users.SetResetPasswordLink(ctx, user.UserID, token); err != nil {
		s.LogError(ctx, err, "Failed to store reset link", slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to request password reset: %w", err)
	}

	html, err := renderEmail("reset", linkEmailData{
		Link:      s.cfg.ClientURL + "/auth/password/reset/" + token,
		Expiry:    utils.HumanDuration(s.cfg.ResetPasswordExpiry),
		ClientURL: s.cfg.ClientURL,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to render reset email")
		return apperrors.NewInternalServerError(apperrors.GenericMessage)
	}
	return s.send(ctx, domain.Email{
		To:      []string{user.Email},
		From:    s.cfg.EmailFrom,
		Subject: "Password reset link",
		HTML:    html,
	})
}

func (s *authService) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.VerifyResetToken(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.users.FindUserByResetLink(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found! The link may have been used already.")
		}
		return fmt.Errorf("failed to load user for reset: %w", err)
	}
	if user.UserID != userID {
		s.GetLogger(ctx).Warn("Reset token subject does not match link owner")
		return apperrors.NewNotFoundError("User not found! The link may have been used already.")
	}

	if err := user.SetPassword(newPassword); err != nil {
		return apperrors.NewBadRequestError("Password is required")
	}
	user.ResetPasswordLink = ""
	user.Touch(s.now())

	if err := s.users.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to persist new password", slog.String("user_id", user.UserID))
		return fmt.Errorf("failed to complete password reset: %w", err)
	}
	return nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.findByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("User with that email does not exist. Please signup.")
	}
	if !user.Authenticate(password) {
		return nil, apperrors.NewAppError(http.StatusUnauthorized, "Email and password do not match.", apperrors.ErrBadCredentials)
	}
	return s.issueSession(ctx, user)
}

func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*domain.Session, error) {
	identity, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.LogError(ctx, err, "Google ID token rejected")
		return nil, apperrors.NewAppError(http.StatusUnauthorized, googleLoginFailed, errors.Join(apperrors.ErrUnauthorized, err))
	}
	if !identity.EmailVerified || identity.Email == "" {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "Google login failed. Email is not verified.", apperrors.ErrUnverifiedEmail)
	}

	user, err := s.findByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if user, err = s.provisionGoogleUser(ctx, identity); err != nil {
			return nil, err
		}
	}
	return s.issueSession(ctx, user)
}

// provisionGoogleUser creates an account that can only sign in through Google until a
// password reset sets a real password.
func (s *authService) provisionGoogleUser(ctx context.Context, identity *domain.GoogleIdentity) (*domain.User, error) {
	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name, _, _ = strings.Cut(identity.Email, "@")
	}
	user, err := s.newUser(name, identity.Email, domain.AuthProviderGoogle)
	if err != nil {
		return nil, err
	}
	user.ProviderUserID = identity.Subject
	user.DisablePasswordLogin()

	if err := s.users.SaveUser(ctx, *user); err != nil {
		// A concurrent login for the same address may have won the insert.
		if errors.Is(err, apperrors.ErrDuplicate) {
			if existing, findErr := s.findByEmail(ctx, identity.Email); findErr == nil && existing != nil {
				return existing, nil
			}
		}
		s.LogError(ctx, err, "Failed to provision google user")
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	s.LogInfo(ctx, "Provisioned user from google identity", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *authService) GoogleExchangeCode(ctx context.Context, code string) (*domain.Session, error) {
	idToken, err := s.identity.ExchangeCode(ctx, code)
	if err != nil {
		if errors.Is(err, gateways.ErrInvalidCode) {
			return nil, apperrors.NewBadRequestError("Invalid or expired authorization code")
		}
		s.LogError(ctx, err, "Google code exchange failed")
		return nil, apperrors.NewBadGatewayError(googleLoginFailed, err)
	}
	return s.GoogleLogin(ctx, idToken)
}

func (s *authService) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	token, expiresAt, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, ExpiresAt: expiresAt, User: user.Public()}, nil
}

// send dispatches mail. A failure is reported but nothing already written is undone.
func (s *authService) send(ctx context.Context, email domain.Email) error {
	if err := s.mailer.Send(ctx, email); err != nil {
		s.LogError(ctx, err, "Failed to send email", slog.String("subject", email.Subject))
		return apperrors.NewBadGatewayError("Email could not be sent. Please try again later.", err)
	}
	return nil
}
