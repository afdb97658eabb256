package match

import (
	"math"
	"sort"

	"github.com/greenmarket/fridgechef/internal/model"
)

// TopK is the maximum number of candidates ever presented to a user. It is
// applied after full ordering, never before.
const TopK = 5

// SortByRating orders a candidate set by mean rating descending, breaking
// ties by vote count descending. The secondary key keeps a 5-star/1-vote
// recipe from outranking a 4.8-star/500-vote one. Sorting is in place; pass a
// copy when the input must survive.
func SortByRating(set []model.Recipe) {
	sort.SliceStable(set, func(i, j int) bool {
		if set[i].RatingMean != set[j].RatingMean {
			return set[i].RatingMean > set[j].RatingMean
		}
		return set[i].VoteCount > set[j].VoteCount
	})
}

// Truncate returns at most k recipes from an already-ordered set.
func Truncate(set []model.Recipe, k int) []model.Recipe {
	if len(set) > k {
		return set[:k]
	}
	return set
}

// MacroTargets are the four nutrition targets of a macro search.
type MacroTargets struct {
	Calories      float64
	Carbohydrates float64
	TotalFat      float64
	Protein       float64
}

// MacroMatch pairs a recipe with its distance to the targets.
type MacroMatch struct {
	Recipe   model.Recipe
	Distance float64
}

// MacroDistance is the sum over the four dimensions of the absolute error
// relative to the target. The max(1, target) denominator guards a zero
// target. The distance is non-negative and zero only for an exact hit on all
// four dimensions.
func MacroDistance(r model.Recipe, t MacroTargets) float64 {
	return relErr(r.Nutrition.Calories, t.Calories) +
		relErr(r.Nutrition.Carbohydrates, t.Carbohydrates) +
		relErr(r.Nutrition.TotalFat, t.TotalFat) +
		relErr(r.Nutrition.Protein, t.Protein)
}

func relErr(actual, target float64) float64 {
	return math.Abs(actual-target) / math.Max(1, target)
}

// RankByMacroDistance scores every recipe in the set against the targets and
// orders the result by distance ascending, mean rating descending. There is
// no hard filter: every recipe participates.
func RankByMacroDistance(set []model.Recipe, t MacroTargets) []MacroMatch {
	matches := make([]MacroMatch, len(set))
	for i, r := range set {
		matches[i] = MacroMatch{Recipe: r, Distance: MacroDistance(r, t)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Recipe.RatingMean > matches[j].Recipe.RatingMean
	})
	return matches
}
