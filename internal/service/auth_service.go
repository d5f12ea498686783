package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"tailorshop/internal/auth"
	apperrors "tailorshop/internal/errors"
	"tailorshop/internal/model"
	"tailorshop/internal/notifier"
	"tailorshop/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("Email already in use")
	// ErrWeakPassword is returned for passwords shorter than auth.MinPasswordLength.
	ErrWeakPassword = errors.New("Password should be at least 6 characters")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// RegisterInput carries the fields of a sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthService handles authentication and email verification.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string, access *auth.Claims) error
	SendVerification(ctx context.Context, userID string) (alreadyVerified bool, err error)
	Verify(ctx context.Context, token string) (*model.User, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	IsRevoked(ctx context.Context, tokenID string) bool
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	mailer     notifier.Mailer
	adminEmail string
	publicURL  string
}

// AuthOptions holds the settings AuthService reads from configuration.
type AuthOptions struct {
	AdminEmail string
	PublicURL  string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer notifier.Mailer,
	opts AuthOptions,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		mailer:     mailer,
		adminEmail: strings.ToLower(strings.TrimSpace(opts.AdminEmail)),
		publicURL:  strings.TrimRight(opts.PublicURL, "/"),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the credentials and profile row, then mails a
// verification link. A mail failure does not fail registration.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if len(in.Password) < auth.MinPasswordLength {
		return nil, ErrWeakPassword
	}
	email := normalizeEmail(in.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := model.RoleCustomer
	if s.adminEmail != "" && email == s.adminEmail {
		role = model.RoleAdmin
	}

	user := &model.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hashedPassword,
		Role:         role,
		Measurements: model.Measurements{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendVerification(ctx, user); err != nil {
		slog.WarnContext(ctx, "verification email failed", "user_id", user.ID, "error", err)
	}
	return user, nil
}

// Login authenticates a user and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user, err = s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", "", nil, ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token
// carrying the user's current role.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedEmail != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token and, when given, the access token
// presented with the request.
func (s *authService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	if access != nil && access.ID != "" {
		if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, auth.RemainingTTL(access)); err != nil {
			return fmt.Errorf("blacklist access token: %w", err)
		}
	}
	return nil
}

// SendVerification mails a fresh verification link unless the user is
// already verified.
func (s *authService) SendVerification(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.EmailVerified {
		return true, nil
	}
	return false, s.sendVerification(ctx, user)
}

func (s *authService) sendVerification(ctx context.Context, user *model.User) error {
	token, err := auth.NewVerificationToken()
	if err != nil {
		return err
	}
	if err := s.tokenStore.StoreVerificationToken(ctx, token, user.ID, auth.VerificationTokenExpiry); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}
	link := s.publicURL + "/api/auth/verify?token=" + url.QueryEscape(token)
	return s.mailer.SendVerification(ctx, user.Email, user.Name, link)
}

// Verify consumes token and marks the owning user verified.
func (s *authService) Verify(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}
	userID, err := s.tokenStore.ConsumeVerificationToken(ctx, token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("set email verified: %w", err)
	}
	user.EmailVerified = true
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// IsRevoked reports whether an access token was blacklisted at logout.
func (s *authService) IsRevoked(ctx context.Context, tokenID string) bool {
	if tokenID == "" {
		return false
	}
	revoked, _ := s.tokenStore.IsAccessTokenBlacklisted(ctx, tokenID)
	return revoked
}
