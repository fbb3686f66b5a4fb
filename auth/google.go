package auth

import (
	"fmt"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// TokenVerifier turns a federated sign-in token into an Identity, or fails.
type TokenVerifier interface {
	Verify(idToken string) (*Identity, error)
}

// GoogleVerifier validates Google ID tokens issued for the admin client.
type GoogleVerifier struct {
	ClientID string
}

func (g *GoogleVerifier) Verify(idToken string) (*Identity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.ClientID}); err != nil {
		return nil, fmt.Errorf("invalid Google ID token: %w", err)
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ID token: %w", err)
	}

	return &Identity{Email: claimSet.Email, Name: claimSet.Name}, nil
}
