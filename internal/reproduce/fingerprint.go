// Package reproduce supports reproducibility of analysis runs: input
// fingerprints to pin down exactly what was analyzed, and score
// comparisons between stored runs.
package reproduce

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"

	"github.com/lexframe-labs/lexframe-cli/internal/core/domain"
)

// Fingerprint computes the reproducibility fingerprint of a source text.
// Identical text always yields an identical checksum.
func Fingerprint(text, sourcePath string) *domain.Fingerprint {
	sum := sha256.Sum256([]byte(text))
	return &domain.Fingerprint{
		Checksum:   hex.EncodeToString(sum[:]),
		ByteSize:   len(text),
		CharCount:  utf8.RuneCountInString(text),
		SourcePath: sourcePath,
	}
}
