// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - RetrieverService: remote corpus, document and chunk management
//   - AnswerGenerator: remote grounded answer generation
//   - DocumentReader: reads local files into raw documents
//   - Normaliser: extracts text from raw documents (PDF)
//   - PostProcessor, PostProcessorPipeline: chunking
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
