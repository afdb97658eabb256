package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmarket/fridgechef/internal/model"
)

func fixtures() []model.Recipe {
	return []model.Recipe{
		{ID: 0, Name: "Banana Bread", Minutes: 60,
			Tags:        []string{"breads", "breakfast"},
			Ingredients: []string{"banana", "flour", "sugar", "egg"}},
		{ID: 1, Name: "Garlic Bread", Minutes: 15,
			Tags:        []string{"breads", "italian"},
			Ingredients: []string{"bread", "garlic", "butter"}},
		{ID: 2, Name: "Chicken Curry", Minutes: 45,
			Tags:        []string{"main-dish", "indian"},
			Ingredients: []string{"chicken", "curry powder", "onion"}},
		{ID: 3, Name: "Pancakes", Minutes: 20,
			Tags:        []string{"breakfast"},
			Ingredients: []string{"flour", "egg", "milk"}},
	}
}

func names(set []model.Recipe) []string {
	out := make([]string, len(set))
	for i, r := range set {
		out[i] = r.Name
	}
	return out
}

func TestByName(t *testing.T) {
	got := ByName(fixtures(), "bread")
	assert.Equal(t, []string{"Banana Bread", "Garlic Bread"}, names(got))

	assert.Empty(t, ByName(fixtures(), "lasagna"))
	assert.Empty(t, ByName(fixtures(), "  "))
}

func TestNarrowByTagsProgressive(t *testing.T) {
	vocab := []string{"breads", "breakfast", "indian", "italian", "main-dish"}

	res := NarrowByTags(fixtures(), []string{"bread", "breakfast"}, vocab, TagThreshold)
	assert.Equal(t, []string{"bread", "breakfast"}, res.Terms)
	assert.Equal(t, []string{"Banana Bread"}, names(res.Matches))
}

func TestNarrowShortCircuitsOnEmptyIntersection(t *testing.T) {
	vocab := []string{"breads", "breakfast", "indian", "italian", "main-dish"}

	res := NarrowByTags(fixtures(), []string{"italian", "breakfast", "indian"}, vocab, TagThreshold)
	// The second term empties the set; the third is never applied but the
	// accumulated display terms keep what was already searched.
	assert.Empty(t, res.Matches)
	assert.Equal(t, []string{"italian", "breakfast"}, res.Terms)
}

func TestNarrowFuzzyCorrectsOnlyWhenDirectPassIsEmpty(t *testing.T) {
	vocab := []string{"banana", "bread", "butter", "chicken", "curry powder", "egg", "flour", "garlic", "milk", "onion", "sugar"}

	// "chiken" matches nothing directly and gets corrected.
	res := NarrowByIngredients(fixtures(), []string{"chiken"}, vocab, IngredientThreshold)
	assert.Equal(t, []string{"chicken"}, res.Terms)
	assert.Equal(t, []string{"Chicken Curry"}, names(res.Matches))

	// "egg" matches directly; the term comes through untouched even though
	// the vocabulary holds close neighbours.
	res = NarrowByIngredients(fixtures(), []string{"egg"}, vocab, IngredientThreshold)
	assert.Equal(t, []string{"egg"}, res.Terms)
	assert.Equal(t, []string{"Banana Bread", "Pancakes"}, names(res.Matches))
}

func TestByExactIngredientsIsConjunctive(t *testing.T) {
	one := ByExactIngredients(fixtures(), []string{"flour"})
	two := ByExactIngredients(fixtures(), []string{"flour", "egg"})
	three := ByExactIngredients(fixtures(), []string{"flour", "egg", "banana"})

	// Adding a term never grows the result.
	require.Equal(t, []string{"Banana Bread", "Pancakes"}, names(one))
	assert.Equal(t, []string{"Banana Bread", "Pancakes"}, names(two))
	assert.Equal(t, []string{"Banana Bread"}, names(three))
	assert.LessOrEqual(t, len(three), len(two))
	assert.LessOrEqual(t, len(two), len(one))
}

func TestByExactIngredientsNoSubstringMatch(t *testing.T) {
	// "curry" is a substring of "curry powder" but not an exact member.
	assert.Empty(t, ByExactIngredients(fixtures(), []string{"curry"}))
}

func TestByExactTags(t *testing.T) {
	got := ByExactTags(fixtures(), []string{"breads", "italian"})
	assert.Equal(t, []string{"Garlic Bread"}, names(got))
}

func TestByMaxMinutes(t *testing.T) {
	got := ByMaxMinutes(fixtures(), 20)
	assert.Equal(t, []string{"Garlic Bread", "Pancakes"}, names(got))
}
