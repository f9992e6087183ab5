// Package extractors provides format-specific text extraction.
//
// Extractors hand the core plain text; the core itself never parses
// files. Selection is by format tag with priority ordering, so a
// format-specific extractor beats the plaintext fallback.
package extractors
