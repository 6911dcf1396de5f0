// Package connectors holds the adapters that reach outside the process:
// the local filesystem and the Generative Language service.
//
//   - filesystem: reads PDF files into raw documents
//   - google: service-account credentials, API clients and rate limits
package connectors
