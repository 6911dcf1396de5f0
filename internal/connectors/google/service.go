package google

import (
	"context"
	"errors"
	"fmt"

	generativelanguage "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// NewRetrieverClient creates a semantic retriever client using the provided TokenSource.
func NewRetrieverClient(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*generativelanguage.RetrieverClient, error) {
	return generativelanguage.NewRetrieverClient(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}

// NewGenerativeClient creates a generative client using the provided TokenSource.
func NewGenerativeClient(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*generativelanguage.GenerativeClient, error) {
	return generativelanguage.NewGenerativeClient(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}

// Clients holds the remote clients shared by one process.
// Construct it once at startup and pass it to the adapters that need it.
type Clients struct {
	Retriever  *generativelanguage.RetrieverClient
	Generative *generativelanguage.GenerativeClient
}

// NewClients creates both remote clients from a single token source.
func NewClients(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*Clients, error) {
	retriever, err := NewRetrieverClient(ctx, ts, opts...)
	if err != nil {
		return nil, fmt.Errorf("create retriever client: %w", err)
	}

	generative, err := NewGenerativeClient(ctx, ts, opts...)
	if err != nil {
		_ = retriever.Close()
		return nil, fmt.Errorf("create generative client: %w", err)
	}

	return &Clients{Retriever: retriever, Generative: generative}, nil
}

// Close releases both client connections.
func (c *Clients) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Retriever != nil {
		errs = append(errs, c.Retriever.Close())
	}
	if c.Generative != nil {
		errs = append(errs, c.Generative.Close())
	}
	return errors.Join(errs...)
}
