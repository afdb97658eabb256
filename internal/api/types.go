package api

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/greenmarket/fridgechef/internal/model"
	"github.com/greenmarket/fridgechef/internal/service"
)

// StringList accepts either a JSON string or a JSON array of strings.
// Upstream entity extraction is inconsistent about single values, so the
// ambiguity is normalized to a list right here at the boundary.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*l = StringList(list)
	return nil
}

// SelectionToken is the opaque recipe token echoed back by the UI. It accepts
// a JSON number or a numeric string; anything else is carried through as an
// invalid selection rather than a malformed request, so the conversation can
// answer with a retry prompt.
type SelectionToken struct {
	Present bool
	Valid   bool
	ID      int
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *SelectionToken) UnmarshalJSON(data []byte) error {
	// Upstream extractors send explicit nulls for empty slots; a null token
	// is an absent one, not a selection.
	if string(data) == "null" {
		return nil
	}
	t.Present = true
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		t.Valid = true
		t.ID = n
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		t.Valid = true
		t.ID = n
	}
	return nil
}

// ChatRequest is one structured conversational turn.
type ChatRequest struct {
	Intent      string         `json:"intent" binding:"required"`
	RecipeName  string         `json:"recipe_name"`
	RecipeID    SelectionToken `json:"recipe_id"`
	Category    StringList     `json:"category"`
	Ingredient  StringList     `json:"ingredient"`
	TimeLimit   *int           `json:"time_limit"`
	MaxCalories *int           `json:"max_calories"`
	MaxCarbs    *int           `json:"max_carbs"`
	MaxFat      *int           `json:"max_fat"`
	MaxProtein  *int           `json:"max_protein"`
	MealTag     string         `json:"meal_tag"`
}

// ChatResponse carries the reply text, optional choice list and optional
// resolved recipe for one turn.
type ChatResponse struct {
	Conversation string           `json:"conversation"`
	Message      string           `json:"message"`
	State        string           `json:"state"`
	Choices      []service.Choice `json:"choices,omitempty"`
	Recipe       *model.Recipe    `json:"recipe,omitempty"`
}

// toServiceRequest maps the wire shape onto the transport-agnostic request.
// A present-but-non-numeric token becomes a selection with no id, which the
// service answers as an invalid selection.
func toServiceRequest(req ChatRequest) service.Request {
	out := service.Request{
		Intent:      service.Intent(req.Intent),
		RecipeName:  req.RecipeName,
		Category:    req.Category,
		Ingredient:  req.Ingredient,
		TimeLimit:   req.TimeLimit,
		MaxCalories: req.MaxCalories,
		MaxCarbs:    req.MaxCarbs,
		MaxFat:      req.MaxFat,
		MaxProtein:  req.MaxProtein,
		MealTag:     req.MealTag,
	}
	if req.RecipeID.Present {
		if req.RecipeID.Valid {
			id := req.RecipeID.ID
			out.RecipeID = &id
		} else {
			out.Intent = service.IntentSelect
		}
	}
	return out
}
