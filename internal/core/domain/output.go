package domain

import "time"

// AnalysisOutput is the immutable result bundle one module produces for a
// corpus. Data holds the module-specific findings payload as a
// JSON-serializable tree of primitives, maps and slices.
type AnalysisOutput struct {
	// ModuleName identifies the producing module.
	ModuleName string `json:"module_name"`

	// Data is the structured findings payload.
	Data map[string]any `json:"data"`

	// Summary carries scalar metrics for quick display and comparison.
	Summary map[string]float64 `json:"summary,omitempty"`

	// Metadata records module provenance (options applied, pattern counts).
	Metadata map[string]any `json:"metadata,omitempty"`
}

// ModuleStatus classifies a per-module run outcome.
type ModuleStatus string

const (
	// StatusOK means the module completed and produced output.
	StatusOK ModuleStatus = "ok"
	// StatusFailed means the module returned an error or panicked.
	StatusFailed ModuleStatus = "failed"
	// StatusTimeout means the module exceeded the per-module wall budget.
	StatusTimeout ModuleStatus = "timeout"
)

// ModuleResult is one module's slot in a pipeline run. A failed module
// never aborts the run; its failure is recorded here instead.
type ModuleResult struct {
	ModuleName string       `json:"module_name"`
	Status     ModuleStatus `json:"status"`

	// Output is set only when Status is StatusOK.
	Output *AnalysisOutput `json:"output,omitempty"`

	// ErrorKind classifies the failure ("error", "panic", "timeout",
	// "unknown_module"). Empty on success.
	ErrorKind string `json:"error_kind,omitempty"`

	// ErrorMessage is the failure detail. Empty on success.
	ErrorMessage string `json:"error_message,omitempty"`
}

// Failed returns true unless the module completed successfully.
func (r *ModuleResult) Failed() bool {
	return r.Status != StatusOK
}

// RunResult aggregates one pipeline run: every requested module in caller
// order with its per-module status.
type RunResult struct {
	// ID is the unique run identifier.
	ID string `json:"id"`

	// CorpusName labels the analyzed corpus.
	CorpusName string `json:"corpus_name"`

	// Profile is the domain profile key used, if any.
	Profile string `json:"profile,omitempty"`

	// Modules preserves the caller-specified execution order.
	Modules []string `json:"modules"`

	// Results maps module name to its result slot.
	Results map[string]*ModuleResult `json:"results"`

	// Fingerprint identifies the exact input analyzed.
	Fingerprint *Fingerprint `json:"fingerprint,omitempty"`

	// StartedAt and FinishedAt bound the run wall time.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Succeeded counts modules that completed.
func (r *RunResult) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if !res.Failed() {
			n++
		}
	}
	return n
}

// AllOK returns true when every requested module completed. Callers that
// need all-or-nothing semantics check this instead of relying on Run to fail.
func (r *RunResult) AllOK() bool {
	return r.Succeeded() == len(r.Modules)
}

// Fingerprint identifies an analysis input for reproducibility.
type Fingerprint struct {
	// Checksum is the SHA-256 hex digest of the source text.
	Checksum string `json:"checksum"`

	// ByteSize and CharCount describe the text size.
	ByteSize  int `json:"byte_size"`
	CharCount int `json:"char_count"`

	// SourcePath is the origin of the text, if file-backed.
	SourcePath string `json:"source_path,omitempty"`
}
