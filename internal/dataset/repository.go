package dataset

import (
	"errors"
	"sort"
	"strings"

	"github.com/greenmarket/fridgechef/internal/model"
)

// ErrNotFound is returned by Get for ids outside the loaded table.
var ErrNotFound = errors.New("recipe not found")

// Repository is the read-only in-memory recipe table. It is built once at
// startup and never mutated afterwards, so concurrent reads need no locking.
// Recipe ids are the row positions assigned by NewRepository and stay valid
// for the lifetime of the process.
type Repository struct {
	recipes  []model.Recipe
	names    []string
	tagVocab []string
	ingVocab []string
}

// NewRepository builds a repository from already-filtered recipes. It assigns
// each recipe its 0-based position as ID and collects the name list and the
// tag and ingredient vocabularies in the same pass. All three are sorted so
// that fuzzy correction resolves score ties to the lexicographically smallest
// term.
func NewRepository(recipes []model.Recipe) *Repository {
	repo := &Repository{
		recipes: recipes,
		names:   make([]string, len(recipes)),
	}

	tagSet := make(map[string]struct{})
	ingSet := make(map[string]struct{})
	for i := range repo.recipes {
		r := &repo.recipes[i]
		r.ID = i
		repo.names[i] = strings.ToLower(r.Name)
		for _, t := range r.Tags {
			tagSet[t] = struct{}{}
		}
		for _, ing := range r.Ingredients {
			ingSet[ing] = struct{}{}
		}
	}

	sort.Strings(repo.names)
	repo.tagVocab = sortedKeys(tagSet)
	repo.ingVocab = sortedKeys(ingSet)
	return repo
}

// Get returns the recipe with the given id or ErrNotFound.
func (r *Repository) Get(id int) (model.Recipe, error) {
	if id < 0 || id >= len(r.recipes) {
		return model.Recipe{}, ErrNotFound
	}
	return r.recipes[id], nil
}

// All returns every recipe in load order. Callers must treat the returned
// slice as read-only.
func (r *Repository) All() []model.Recipe {
	return r.recipes
}

// Len returns the number of loaded recipes.
func (r *Repository) Len() int {
	return len(r.recipes)
}

// Names returns the sorted list of every recipe name, lowercased. It exists
// for fuzzy correction, which breaks score ties by list order.
func (r *Repository) Names() []string {
	return r.names
}

// TagVocabulary returns the sorted set of every tag in the table.
func (r *Repository) TagVocabulary() []string {
	return r.tagVocab
}

// IngredientVocabulary returns the sorted set of every ingredient in the table.
func (r *Repository) IngredientVocabulary() []string {
	return r.ingVocab
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
