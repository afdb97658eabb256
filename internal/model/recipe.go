package model

// Nutrition holds the seven nutrition facts of a recipe. Calories are kcal,
// every other field is a percent-daily-value.
type Nutrition struct {
	Calories      float64 `json:"calories"`
	TotalFat      float64 `json:"total_fat"`
	Sugar         float64 `json:"sugar"`
	Sodium        float64 `json:"sodium"`
	Protein       float64 `json:"protein"`
	SaturatedFat  float64 `json:"saturated_fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

// Recipe represents a single row of the loaded dataset. ID is the post-filter
// row position assigned once at load time and is the only key that is safe to
// hand out across conversation turns; SourceID is whatever id the source
// dataset carried.
type Recipe struct {
	ID          int       `json:"id"`
	SourceID    int       `json:"source_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Minutes     int       `json:"minutes"`
	RatingMean  float64   `json:"rating_mean"`
	VoteCount   int       `json:"vote_count"`
	Tags        []string  `json:"tags"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Nutrition   Nutrition `json:"nutrition"`
}

// HasTag reports whether the recipe carries the exact tag.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasIngredient reports whether the recipe uses the exact ingredient.
func (r Recipe) HasIngredient(ingredient string) bool {
	for _, ing := range r.Ingredients {
		if ing == ingredient {
			return true
		}
	}
	return false
}
