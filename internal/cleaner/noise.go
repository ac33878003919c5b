package cleaner

import (
	"unicode"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

const (
	// spamSaturation is the number of progress/iteration hits at which the
	// spam bonus stops growing.
	spamSaturation = 10.0

	// spamWeight is the score added once spam saturates.
	spamWeight = 0.5
)

// Score computes the noise statistics of cleaned text.
//
// The score is the share of characters that are neither letters, digits nor
// whitespace, plus up to spamWeight for residual progress bars and iteration
// lines. It is a monotonic risk score, not a probability, and may exceed 1.
// Empty text scores 1.
func Score(s string) domain.NoiseStats {
	if s == "" {
		return domain.NoiseStats{NoiseScore: 1}
	}

	var st domain.NoiseStats
	for _, r := range s {
		st.Length++
		switch {
		case unicode.IsLetter(r):
			st.Letters++
		case unicode.IsDigit(r):
			st.Digits++
		case unicode.IsSpace(r):
			st.Spaces++
		}
	}
	st.Other = st.Length - st.Letters - st.Digits - st.Spaces

	st.ProgressHits = countMatches(progressBarRe, s)
	st.IterLines = countMatches(iterationSpamRe, s)

	spam := min(1.0, float64(st.ProgressHits+st.IterLines)/spamSaturation)
	st.NoiseScore = float64(st.Other)/float64(max(1, st.Length)) + spam*spamWeight
	return st
}
