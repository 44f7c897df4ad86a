// README: Firebase ID-token verification for traveller auth, plus a dev verifier for local runs.
package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrInvalidToken is returned by the dev verifier for malformed tokens.
var ErrInvalidToken = errors.New("invalid id token")

// FirebaseToken is the verified caller identity.
type FirebaseToken struct {
	UID    string
	Claims map[string]interface{}
}

// Email returns the token's email claim, or "".
func (t *FirebaseToken) Email() string {
	if t == nil {
		return ""
	}
	email, _ := t.Claims["email"].(string)
	return email
}

type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier builds a verifier on the Firebase Admin SDK. An empty
// credentialsFile falls back to application-default credentials.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string) (TokenVerifier, error) {
	if projectID == "" {
		return nil, errors.New("firebase project id is required")
	}
	opts := []option.ClientOption{}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &FirebaseToken{UID: token.UID, Claims: token.Claims}, nil
}

// DevVerifier accepts "dev:<uid>" or "dev:<uid>:<email>" tokens. Only for
// local runs with VOYAGE_AUTH_DEV=true.
type DevVerifier struct{}

func (DevVerifier) VerifyIDToken(_ context.Context, idToken string) (*FirebaseToken, error) {
	rest, ok := strings.CutPrefix(idToken, "dev:")
	if !ok || rest == "" {
		return nil, ErrInvalidToken
	}
	uid, email, _ := strings.Cut(rest, ":")
	if uid == "" {
		return nil, ErrInvalidToken
	}
	claims := map[string]interface{}{}
	if email != "" {
		claims["email"] = email
	}
	return &FirebaseToken{UID: uid, Claims: claims}, nil
}
