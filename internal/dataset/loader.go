package dataset

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/greenmarket/fridgechef/internal/model"
)

// Quality cutoffs applied at load time. Rows outside these bounds are noise
// from the source dataset (unrated recipes, zero-minute rows, serving-size
// errors in the calorie column) and never enter the table.
const (
	maxCalories = 10000
	sentinelTag = "general"
)

// row mirrors the dataset CSV. Numeric columns come through pandas, so
// integer-valued fields may be written as floats ("10.0").
type row struct {
	Name          string   `csv:"name"`
	SourceID      int      `csv:"id"`
	Minutes       float64  `csv:"minutes"`
	Steps         ListCell `csv:"steps"`
	Description   string   `csv:"description"`
	Ingredients   ListCell `csv:"ingredients"`
	Tags          ListCell `csv:"tags"`
	RatingMean    float64  `csv:"rating_medio"`
	VoteCount     float64  `csv:"num_voti"`
	Calories      float64  `csv:"calories"`
	TotalFat      float64  `csv:"total_fat"`
	Sugar         float64  `csv:"sugar"`
	Sodium        float64  `csv:"sodium"`
	Protein       float64  `csv:"protein"`
	SaturatedFat  float64  `csv:"saturated_fat"`
	Carbohydrates float64  `csv:"carbohydrates"`
}

// Load reads the recipe dataset from path, drops rows that fail the quality
// filters and returns the resulting repository. This is the only I/O the
// process performs after startup configuration; everything downstream works
// off the in-memory table.
func Load(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var rows []row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	recipes := make([]model.Recipe, 0, len(rows))
	for _, rw := range rows {
		ingredients := normalizeTerms(rw.Ingredients)
		if len(ingredients) == 0 {
			continue
		}
		if rw.Minutes <= 0 || rw.VoteCount <= 0 || rw.Calories >= maxCalories {
			continue
		}

		tags := normalizeTerms(rw.Tags)
		if len(tags) == 0 {
			tags = []string{sentinelTag}
		}

		recipes = append(recipes, model.Recipe{
			SourceID:    rw.SourceID,
			Name:        strings.TrimSpace(rw.Name),
			Description: strings.TrimSpace(rw.Description),
			Minutes:     int(rw.Minutes),
			RatingMean:  rw.RatingMean,
			VoteCount:   int(rw.VoteCount),
			Tags:        tags,
			Ingredients: ingredients,
			Steps:       rw.Steps,
			Nutrition: model.Nutrition{
				Calories:      rw.Calories,
				TotalFat:      rw.TotalFat,
				Sugar:         rw.Sugar,
				Sodium:        rw.Sodium,
				Protein:       rw.Protein,
				SaturatedFat:  rw.SaturatedFat,
				Carbohydrates: rw.Carbohydrates,
			},
		})
	}

	return NewRepository(recipes), nil
}

// normalizeTerms lowercases and trims each term, dropping empties.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
