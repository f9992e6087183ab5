// Package services implements the core orchestration logic.
//
// The Pipeline runs analysis modules against a frozen corpus with
// partial-failure semantics; the AnalysisService drives the whole flow
// from a source file to a run result.
package services
