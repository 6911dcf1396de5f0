package google

import (
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/pdfqa-cli/internal/logger"
)

// TokenSourceAdapter wraps a credentials token source so that token
// failures surface as ErrUnauthorized instead of opaque transport errors.
type TokenSourceAdapter struct {
	base oauth2.TokenSource
}

// NewTokenSource creates an oauth2.TokenSource that caches tokens from base
// until they expire. The returned TokenSource can be used with
// option.WithTokenSource() when creating Google API clients.
func NewTokenSource(base oauth2.TokenSource) oauth2.TokenSource {
	return &TokenSourceAdapter{
		base: oauth2.ReuseTokenSource(nil, base),
	}
}

// Token implements oauth2.TokenSource interface.
// Called by Google API clients when they need an access token.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	tok, err := t.base.Token()
	if err != nil {
		logger.Warn("failed to obtain access token: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return tok, nil
}
