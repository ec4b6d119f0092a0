package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository/memory"
)

const testSecret = "test-secret"

type fakeVerifier map[string]GoogleIdentity

func (f fakeVerifier) Verify(_ context.Context, idToken string) (*GoogleIdentity, error) {
	identity, ok := f[idToken]
	if !ok {
		return nil, errors.New("token signature invalid")
	}
	return &identity, nil
}

func newAuth(verifier IdentityVerifier) (AuthService, *memory.UserRepository) {
	users := memory.NewUserRepository()
	return NewAuthService(users, verifier, testSecret, time.Hour, zerolog.Nop()), users
}

func TestRegisterAndLogin(t *testing.T) {
	auth, _ := newAuth(nil)
	ctx := context.Background()

	resp, err := auth.Register(ctx, domain.Credentials{Name: "Demo User", Email: " Demo@WellVantage.com ", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "demo@wellvantage.com", resp.User.Email)
	assert.Empty(t, resp.User.PasswordHash)

	uid, err := auth.ParseToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, uid)

	_, err = auth.Register(ctx, domain.Credentials{Name: "Again", Email: "demo@wellvantage.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = auth.Login(ctx, domain.Credentials{Email: "demo@wellvantage.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
	_, err = auth.Login(ctx, domain.Credentials{Email: "nobody@wellvantage.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	login, err := auth.Login(ctx, domain.Credentials{Email: "DEMO@wellvantage.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterValidation(t *testing.T) {
	auth, _ := newAuth(nil)
	_, err := auth.Register(context.Background(), domain.Credentials{Name: "x", Email: "x@y.z", Password: "short"})
	var in InputError
	assert.True(t, errors.As(err, &in))
}

func TestParseTokenRejectsTampering(t *testing.T) {
	auth, _ := newAuth(nil)
	_, err := auth.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(memory.NewUserRepository(), nil, "other-secret", time.Hour, zerolog.Nop())
	resp, err := other.Register(context.Background(), domain.Credentials{Name: "a", Email: "a@b.c", Password: "password1"})
	require.NoError(t, err)
	_, err = auth.ParseToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtClaims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = auth.ParseToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGoogleSignIn(t *testing.T) {
	verifier := fakeVerifier{
		"good": {Subject: "g-1", Email: "demo@wellvantage.com", Name: "Demo User"},
		"link": {Subject: "g-2", Email: "coach@wellvantage.com"},
	}
	auth, users := newAuth(verifier)
	ctx := context.Background()

	first, err := auth.SignInWithGoogle(ctx, domain.GoogleSignIn{IDToken: "good", ProfilePicture: "https://ui-avatars.com/api/?name=Demo+User"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", first.User.GoogleID)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Demo+User", first.User.ProfilePicture)

	again, err := auth.SignInWithGoogle(ctx, domain.GoogleSignIn{IDToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, again.User.ID, "same Google subject, same account")

	_, err = auth.Register(ctx, domain.Credentials{Name: "Coach", Email: "coach@wellvantage.com", Password: "password1"})
	require.NoError(t, err)
	linked, err := auth.SignInWithGoogle(ctx, domain.GoogleSignIn{IDToken: "link"})
	require.NoError(t, err)
	stored, err := users.GetByEmail(ctx, "coach@wellvantage.com")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, linked.User.ID)
	assert.Equal(t, "g-2", stored.GoogleID)

	_, err = auth.SignInWithGoogle(ctx, domain.GoogleSignIn{IDToken: "forged", Email: "demo@wellvantage.com"})
	assert.ErrorIs(t, err, ErrInvalidIdentityToken)
}

func TestGoogleSignInDisabled(t *testing.T) {
	auth, _ := newAuth(nil)
	_, err := auth.SignInWithGoogle(context.Background(), domain.GoogleSignIn{IDToken: "x"})
	assert.ErrorIs(t, err, ErrGoogleDisabled)
}
