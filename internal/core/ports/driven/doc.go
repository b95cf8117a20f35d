// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Maps text to fixed-length vectors
//   - VectorIndex: Stores vectors and answers nearest-neighbour queries
//   - LLMService: Produces the answer text from an assembled prompt
//   - PostProcessor: Normalises and segments report text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PromptStore: Operator override of the answer template. Without it the
//     built-in versioned template is used.
//   - TextExtractor: OCR for uploaded report images. Without it uploads fail
//     with domain.ErrOCRUnavailable.
//   - AnswerLog: Audit trail of answered questions. Without it nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or postprocessor package
package driven
