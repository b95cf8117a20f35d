// Package domain defines the core business entities for reportqa.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A unit of report text with metadata
//   - Chunk: A retrievable slice of a document
//   - ScoredChunk: A chunk returned by similarity search
//   - Prompt: The assembled model input and its template version
//   - AnswerResult: The single result shape of the answering pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
