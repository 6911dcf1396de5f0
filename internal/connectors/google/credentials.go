package google

import (
	"context"
	"errors"
	"fmt"
	"os"

	googleoauth "golang.org/x/oauth2/google"
)

// Scopes are the OAuth2 scopes requested for the service account.
var Scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/generative-language.retriever",
}

// ErrCredentialsNotFound indicates the service-account key file does not exist.
var ErrCredentialsNotFound = errors.New("google: credentials file not found")

// ErrInvalidCredentials indicates the key file could not be parsed.
var ErrInvalidCredentials = errors.New("google: invalid credentials file")

// LoadServiceAccount reads a service-account key file and returns
// credentials scoped for the semantic retriever.
func LoadServiceAccount(ctx context.Context, path string) (*googleoauth.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, path)
		}
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}

	creds, err := googleoauth.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCredentials, path, err)
	}

	return creds, nil
}
