// Package driven defines the interfaces that core calls OUT to collaborators.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces and adapter packages implement
// them.
//
// # Required Interfaces
//
//   - AnalysisModule: one category of findings computed over a corpus
//   - NamingStrategy: stable unique id assignment during atomization
//   - Extractor: format-specific raw text extraction
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - FindingsStore: run persistence. Without it, --save is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: any adapter, analysis, or extractor package
package driven
