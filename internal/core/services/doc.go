// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The answering pipeline lives here: index construction, retrieval,
// prompt assembly and the request state machine that ties them to the
// language model. Services are pure Go with no CGO.
package services
