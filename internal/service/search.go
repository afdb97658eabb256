package service

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/greenmarket/fridgechef/internal/dataset"
	"github.com/greenmarket/fridgechef/internal/match"
	"github.com/greenmarket/fridgechef/internal/model"
)

// Choice is one presented candidate. ID doubles as the opaque selection
// token: echoing it back resolves to exactly this recipe for as long as the
// process lives.
type Choice struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Result is the outcome of a search operation. Exactly one of Recipe
// (auto-resolved) or Choices (disambiguation list) is set on success. Terms
// records the applied, possibly fuzzy-corrected, search terms so callers can
// build messages around them.
type Result struct {
	Recipe  *model.Recipe
	Choices []Choice
	Terms   []string
}

// SearchService runs the filter pipeline and ranker over the loaded
// repository. It holds no per-conversation state and is safe for concurrent
// use.
type SearchService struct {
	repo   *dataset.Repository
	logger *zap.Logger
}

// NewSearchService creates a SearchService over the given repository.
func NewSearchService(repo *dataset.Repository, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{repo: repo, logger: logger}
}

// Get returns the recipe behind a selection token.
func (s *SearchService) Get(id int) (model.Recipe, error) {
	return s.repo.Get(id)
}

// SearchByName finds recipes whose name contains the query. When the direct
// substring pass is empty the query is fuzzy-corrected against every recipe
// name and retried. A single match auto-resolves; multiple matches become a
// ranked top-5 choice list.
func (s *SearchService) SearchByName(query string) (Result, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Result{}, ErrAmbiguousInput
	}

	all := s.repo.All()
	matches := match.ByName(all, q)
	term := q
	if len(matches) == 0 {
		corrected, score, ok := match.Correct(q, s.repo.Names(), match.NameThreshold)
		if !ok {
			return Result{Terms: []string{q}}, ErrNoMatch
		}
		s.logger.Debug("corrected recipe name",
			zap.String("query", q), zap.String("corrected", corrected), zap.Float64("score", score))
		term = corrected
		matches = match.ByName(all, corrected)
	}
	if len(matches) == 0 {
		return Result{Terms: []string{term}}, ErrNoMatch
	}

	if len(matches) == 1 {
		r := matches[0]
		return Result{Recipe: &r, Terms: []string{term}}, nil
	}

	ranked := rankCopy(matches)
	return Result{Choices: toChoices(match.Truncate(ranked, match.TopK)), Terms: []string{term}}, nil
}

// SearchByTags progressively narrows the table by category terms, correcting
// each unmatched term against the tag vocabulary. The result is always a
// choice list, even when a single candidate survives.
func (s *SearchService) SearchByTags(terms []string) (Result, error) {
	cleaned := cleanTerms(terms)
	if len(cleaned) == 0 {
		return Result{}, ErrAmbiguousInput
	}
	res := match.NarrowByTags(s.repo.All(), cleaned, s.repo.TagVocabulary(), match.TagThreshold)
	return s.choiceResult(res)
}

// SearchByIngredients is SearchByTags over ingredient text, with the stricter
// ingredient correction threshold.
func (s *SearchService) SearchByIngredients(terms []string) (Result, error) {
	cleaned := cleanTerms(terms)
	if len(cleaned) == 0 {
		return Result{}, ErrAmbiguousInput
	}
	res := match.NarrowByIngredients(s.repo.All(), cleaned, s.repo.IngredientVocabulary(), match.IngredientThreshold)
	return s.choiceResult(res)
}

func (s *SearchService) choiceResult(res match.NarrowResult) (Result, error) {
	if len(res.Matches) == 0 {
		return Result{Terms: res.Terms}, ErrNoMatch
	}
	ranked := rankCopy(res.Matches)
	return Result{Choices: toChoices(match.Truncate(ranked, match.TopK)), Terms: res.Terms}, nil
}

// ValidateTag maps a form-entered category to an exact vocabulary tag,
// fuzzy-correcting at the form threshold when it is not already a member.
func (s *SearchService) ValidateTag(term string) (string, bool) {
	return validateTerm(term, s.repo.TagVocabulary(), match.FormTagThreshold)
}

// ValidateIngredient maps a form-entered ingredient to an exact vocabulary
// member.
func (s *SearchService) ValidateIngredient(term string) (string, bool) {
	return validateTerm(term, s.repo.IngredientVocabulary(), match.FormIngredientThreshold)
}

func validateTerm(term string, vocab []string, threshold float64) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return "", false
	}
	if isVocabMember(vocab, t) {
		return t, true
	}
	corrected, _, ok := match.Correct(t, vocab, threshold)
	return corrected, ok
}

// isVocabMember does a binary search; vocabularies are sorted at load.
func isVocabMember(vocab []string, term string) bool {
	i := sort.SearchStrings(vocab, term)
	return i < len(vocab) && vocab[i] == term
}

// StructuredSearch is the guided-form search: every ingredient and tag must
// be an exact set member of a qualifying recipe, and the cook time must not
// exceed the limit when one is given. Form values are validated against the
// vocabularies first; a value that cannot be validated cannot match anything
// exactly, so it ends the search as a no-match.
func (s *SearchService) StructuredSearch(ingredients, tags []string, timeLimit *int) (Result, error) {
	ings := cleanTerms(ingredients)
	tgs := cleanTerms(tags)
	if len(ings) == 0 && len(tgs) == 0 && timeLimit == nil {
		return Result{}, ErrAmbiguousInput
	}

	var applied []string
	validIngs := make([]string, 0, len(ings))
	for _, ing := range ings {
		v, ok := s.ValidateIngredient(ing)
		if !ok {
			return Result{Terms: append(applied, ing)}, ErrNoMatch
		}
		validIngs = append(validIngs, v)
		applied = append(applied, v)
	}
	validTags := make([]string, 0, len(tgs))
	for _, tag := range tgs {
		v, ok := s.ValidateTag(tag)
		if !ok {
			return Result{Terms: append(applied, tag)}, ErrNoMatch
		}
		validTags = append(validTags, v)
		applied = append(applied, v)
	}

	set := s.repo.All()
	if len(validIngs) > 0 {
		set = match.ByExactIngredients(set, validIngs)
	}
	if len(validTags) > 0 {
		set = match.ByExactTags(set, validTags)
	}
	if timeLimit != nil {
		set = match.ByMaxMinutes(set, *timeLimit)
	}
	if len(set) == 0 {
		return Result{Terms: applied}, ErrNoMatch
	}

	ranked := rankCopy(set)
	return Result{Choices: toChoices(match.Truncate(ranked, match.TopK)), Terms: applied}, nil
}

// MacroSearch ranks the whole table by distance to the four nutrition
// targets. Nothing is filtered out; the top five closest recipes are
// presented as choices.
func (s *SearchService) MacroSearch(targets match.MacroTargets) (Result, error) {
	matches := match.RankByMacroDistance(s.repo.All(), targets)
	if len(matches) > match.TopK {
		matches = matches[:match.TopK]
	}
	choices := make([]Choice, len(matches))
	for i, m := range matches {
		choices[i] = Choice{ID: m.Recipe.ID, Label: macroLabel(m)}
	}
	if len(choices) == 0 {
		return Result{}, ErrNoMatch
	}
	return Result{Choices: choices}, nil
}

// TopRatedRecipes returns the five best recipes of the whole table by the
// default ordering.
func (s *SearchService) TopRatedRecipes() []model.Recipe {
	return match.Truncate(rankCopy(s.repo.All()), match.TopK)
}

// TopRated is TopRatedRecipes shaped as a choice list for the conversation.
func (s *SearchService) TopRated() Result {
	return Result{Choices: toChoices(s.TopRatedRecipes())}
}

func rankCopy(set []model.Recipe) []model.Recipe {
	ranked := append([]model.Recipe(nil), set...)
	match.SortByRating(ranked)
	return ranked
}

func toChoices(set []model.Recipe) []Choice {
	choices := make([]Choice, len(set))
	for i, r := range set {
		choices[i] = Choice{ID: r.ID, Label: recipeLabel(r)}
	}
	return choices
}

func recipeLabel(r model.Recipe) string {
	return fmt.Sprintf("%s (%.1f/5, %d votes, %d min)", r.Name, r.RatingMean, r.VoteCount, r.Minutes)
}

func macroLabel(m match.MacroMatch) string {
	return fmt.Sprintf("%s (%.0f kcal, %.1f/5)", m.Recipe.Name, m.Recipe.Nutrition.Calories, m.Recipe.RatingMean)
}

func cleanTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
