package match

import (
	"strings"

	"github.com/greenmarket/fridgechef/internal/model"
)

// ByName returns the recipes whose name contains the query, case-insensitively.
func ByName(set []model.Recipe, query string) []model.Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []model.Recipe
	for _, r := range set {
		if strings.Contains(strings.ToLower(r.Name), q) {
			out = append(out, r)
		}
	}
	return out
}

// NarrowResult is the outcome of a progressive multi-term narrowing pass.
// Terms holds every term that was applied, after fuzzy correction, in input
// order; on an early empty intersection it still includes the term that
// produced it, so a not-found message can name what was searched.
type NarrowResult struct {
	Matches []model.Recipe
	Terms   []string
}

// NarrowByTags progressively narrows set to recipes whose tag text contains
// each query term. Terms are applied in order against the current working
// set; a term that matches nothing directly is fuzzy-corrected against the
// global tag vocabulary and retried. An empty intersection short-circuits:
// later terms are neither corrected nor applied.
func NarrowByTags(set []model.Recipe, terms, vocab []string, threshold float64) NarrowResult {
	return narrow(set, terms, vocab, threshold, func(r model.Recipe) []string { return r.Tags })
}

// NarrowByIngredients is NarrowByTags over ingredient text.
func NarrowByIngredients(set []model.Recipe, terms, vocab []string, threshold float64) NarrowResult {
	return narrow(set, terms, vocab, threshold, func(r model.Recipe) []string { return r.Ingredients })
}

func narrow(set []model.Recipe, terms, vocab []string, threshold float64, values func(model.Recipe) []string) NarrowResult {
	res := NarrowResult{Matches: set}
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}

		narrowed := filterContaining(res.Matches, term, values)
		if len(narrowed) == 0 {
			// Fuzzy correction happens only after the direct pass found
			// nothing, and only against the global vocabulary.
			if corrected, _, ok := Correct(term, vocab, threshold); ok {
				term = corrected
				narrowed = filterContaining(res.Matches, term, values)
			}
		}

		res.Terms = append(res.Terms, term)
		res.Matches = narrowed
		if len(res.Matches) == 0 {
			break
		}
	}
	return res
}

func filterContaining(set []model.Recipe, term string, values func(model.Recipe) []string) []model.Recipe {
	var out []model.Recipe
	for _, r := range set {
		for _, v := range values(r) {
			if strings.Contains(v, term) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// ByExactIngredients keeps recipes containing every query ingredient as an
// exact set member. Adding a query term can only shrink the result.
func ByExactIngredients(set []model.Recipe, ingredients []string) []model.Recipe {
	var out []model.Recipe
	for _, r := range set {
		if hasAllExact(r.Ingredients, ingredients) {
			out = append(out, r)
		}
	}
	return out
}

// ByExactTags keeps recipes carrying every query tag as an exact set member.
func ByExactTags(set []model.Recipe, tags []string) []model.Recipe {
	var out []model.Recipe
	for _, r := range set {
		if hasAllExact(r.Tags, tags) {
			out = append(out, r)
		}
	}
	return out
}

// ByMaxMinutes keeps recipes whose cook time does not exceed limit.
func ByMaxMinutes(set []model.Recipe, limit int) []model.Recipe {
	var out []model.Recipe
	for _, r := range set {
		if r.Minutes <= limit {
			out = append(out, r)
		}
	}
	return out
}

func hasAllExact(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
