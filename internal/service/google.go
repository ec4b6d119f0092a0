package service

import (
	"context"

	"google.golang.org/api/idtoken"

	"wellvantage/fitness-app/internal/domain"
)

// GoogleIdentity is the verified content of a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// fill takes display fields the token did not carry from the request body.
// Subject and email always come from the token since they identify the account.
func (g *GoogleIdentity) fill(in domain.GoogleSignIn) {
	if g.Name == "" {
		g.Name = in.Name
	}
	if g.Picture == "" {
		g.Picture = in.ProfilePicture
	}
}

// IdentityVerifier checks an identity-provider token.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier verifies ID tokens issued for clientID against Google's keys.
func NewGoogleVerifier(clientID string) IdentityVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, idToken, v.clientID)
	if err != nil {
		return nil, err
	}
	identity := &GoogleIdentity{Subject: payload.Subject}
	identity.Email, _ = payload.Claims["email"].(string)
	identity.Name, _ = payload.Claims["name"].(string)
	identity.Picture, _ = payload.Claims["picture"].(string)
	return identity, nil
}
