// Package match implements the recipe matching engine: fuzzy vocabulary
// correction, the progressive filter pipeline and deterministic ranking.
package match

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Similarity thresholds for the different correction call sites. A correction
// is only accepted when the best vocabulary candidate scores at or above the
// threshold on the 0-100 scale.
const (
	NameThreshold           = 60
	TagThreshold            = 65
	IngredientThreshold     = 70
	FormTagThreshold        = 75
	FormIngredientThreshold = 80
	ThemeThreshold          = 75
)

// Similarity returns the normalized Levenshtein ratio between two strings,
// scaled to [0, 100]. Comparison is case-insensitive.
func Similarity(a, b string) float64 {
	score, err := edlib.StringsSimilarity(strings.ToLower(a), strings.ToLower(b), edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(score) * 100
}

// Correct maps a free-text term to the closest vocabulary member. It returns
// the best match, its similarity score and whether the score cleared the
// threshold. Ties resolve to the first candidate in vocabulary order, so a
// sorted vocabulary yields the lexicographically smallest winner.
func Correct(term string, vocab []string, threshold float64) (string, float64, bool) {
	if len(vocab) == 0 {
		return "", 0, false
	}

	best := ""
	bestScore := -1.0
	for _, candidate := range vocab {
		if score := Similarity(term, candidate); score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if bestScore < threshold {
		return "", bestScore, false
	}
	return best, bestScore, true
}
