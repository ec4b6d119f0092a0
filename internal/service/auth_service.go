package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository"
)

// AuthService issues access tokens for email/password and Google accounts.
type AuthService interface {
	Register(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error)
	Login(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error)
	SignInWithGoogle(ctx context.Context, in domain.GoogleSignIn) (*domain.AuthResponse, error)
	// ParseToken validates an access token and returns the user id it was issued for.
	ParseToken(token string) (string, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	verifier      IdentityVerifier // nil disables Google sign-in
	jwtSecret     string
	jwtExpiration time.Duration
	logger        zerolog.Logger
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, verifier IdentityVerifier, jwtSecret string, jwtExpiration time.Duration, logger zerolog.Logger) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &authService{
		userRepo:      userRepo,
		verifier:      verifier,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		logger:        logger.With().Str("component", "auth").Logger(),
	}
}

// Register creates an email/password account and signs it in.
func (s *authService) Register(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if in.Name == "" || email == "" || in.Password == "" {
		return nil, InputError("name, email and password are required")
	}
	if len(in.Password) < 8 {
		return nil, InputError("password must be at least 8 characters")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// Another request may have registered the same email since the check.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("registered password account")
	return s.issue(user)
}

// Login authenticates an email/password account.
func (s *authService) Login(ctx context.Context, in domain.Credentials) (*domain.AuthResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, InputError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}
	// Google-only accounts have no hash and never match.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrAuthenticationFailed
	}
	return s.issue(user)
}

// SignInWithGoogle verifies a Google ID token and signs in the matching user,
// linking an existing email account or creating a new one.
func (s *authService) SignInWithGoogle(ctx context.Context, in domain.GoogleSignIn) (*domain.AuthResponse, error) {
	if s.verifier == nil {
		return nil, ErrGoogleDisabled
	}
	if in.IDToken == "" {
		return nil, InputError("idToken is required")
	}

	identity, err := s.verifier.Verify(ctx, in.IDToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("rejected Google identity token")
		return nil, ErrInvalidIdentityToken
	}
	identity.fill(in)

	user, err := s.userRepo.GetByGoogleID(ctx, identity.Subject)
	switch {
	case err == nil:
		return s.issue(user)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	email := normalizeEmail(identity.Email)
	if email == "" {
		return nil, ErrInvalidIdentityToken
	}
	user, err = s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		user.GoogleID = identity.Subject
		if user.ProfilePicture == "" {
			user.ProfilePicture = identity.Picture
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info().Str("user_id", user.ID).Msg("linked Google account")
		return s.issue(user)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	user = &domain.User{
		Email:          email,
		Name:           identity.Name,
		GoogleID:       identity.Subject,
		ProfilePicture: identity.Picture,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("created Google account")
	return s.issue(user)
}

func (s *authService) issue(user *domain.User) (*domain.AuthResponse, error) {
	token, err := s.generateJWT(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to sign token")
		return nil, ErrTokenGeneration
	}
	out := *user
	out.PasswordHash = ""
	return &domain.AuthResponse{AccessToken: token, User: out}, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "wellvantage",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ParseToken validates the signature, the signing method and the expiry.
func (s *authService) ParseToken(tokenString string) (string, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
