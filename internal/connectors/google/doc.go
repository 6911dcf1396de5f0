// Package google provides shared infrastructure for the Generative Language
// semantic retriever.
//
// It contains:
//   - Service-account credential loading with the retriever scopes
//   - A TokenSource adapter that reports token failures as ErrUnauthorized
//   - Client factories for the retriever and generative clients
//   - Error classification for gRPC and HTTP API errors
//   - Rate limiting to respect API quotas
//
// # Usage
//
//	creds, err := google.LoadServiceAccount(ctx, "service_account_key.json")
//	ts := google.NewTokenSource(creds.TokenSource)
//	clients, err := google.NewClients(ctx, ts)
//	defer clients.Close()
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/cloud-platform
//   - https://www.googleapis.com/auth/generative-language.retriever
package google
