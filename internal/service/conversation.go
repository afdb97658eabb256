package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/greenmarket/fridgechef/internal/dataset"
	"github.com/greenmarket/fridgechef/internal/match"
	"github.com/greenmarket/fridgechef/internal/model"
)

// Intent names the search operation a turn asks for.
type Intent string

const (
	IntentFindByName       Intent = "find_by_name"
	IntentFindByCategory   Intent = "find_by_category"
	IntentFindByIngredient Intent = "find_by_ingredient"
	IntentGuidedSearch     Intent = "guided_search"
	IntentMacroSearch      Intent = "macro_search"
	IntentThemeMenu        Intent = "theme_menu"
	IntentTopRated         Intent = "top_rated"
	IntentSelect           Intent = "select"
)

// Request is a structured intent with its slot values, decoupled from any
// transport. Category and Ingredient are already normalized to lists at the
// boundary.
type Request struct {
	Intent      Intent
	RecipeName  string
	RecipeID    *int
	Category    []string
	Ingredient  []string
	TimeLimit   *int
	MaxCalories *int
	MaxCarbs    *int
	MaxFat      *int
	MaxProtein  *int
	MealTag     string
}

// Reply is what a turn sends back: free text, at most five selectable
// choices and, once a recipe is resolved, its detail.
type Reply struct {
	Message string
	Choices []Choice
	Recipe  *model.Recipe
	State   State
}

const datasetApology = "I'm sorry, I can't access the recipe database right now."

// ConversationService drives one user turn end to end: it runs the search,
// applies the candidate-selection rule, and moves the conversation's session
// through the state machine. A nil SearchService models a failed dataset
// load; every turn then gets the fixed apology.
type ConversationService struct {
	search   *SearchService
	sessions SessionStore
	logger   *zap.Logger
}

// NewConversationService wires the orchestrator.
func NewConversationService(search *SearchService, sessions SessionStore, logger *zap.Logger) *ConversationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationService{search: search, sessions: sessions, logger: logger}
}

// Ready reports whether the dataset behind the service is loaded.
func (c *ConversationService) Ready() bool {
	return c.search != nil
}

// HandleIntent processes one turn. Errors from the conversational taxonomy
// come back alongside a user-facing Reply; anything else is an infrastructure
// failure.
func (c *ConversationService) HandleIntent(ctx context.Context, conversation string, req Request) (Reply, error) {
	if c.search == nil {
		return Reply{Message: datasetApology, State: StateIdle}, ErrDatasetUnavailable
	}

	sess, err := c.sessions.Get(ctx, conversation)
	if err != nil {
		return Reply{}, err
	}

	// An explicit id wins over any held name or category text; no name-based
	// re-resolution happens when one is present.
	if req.RecipeID != nil || req.Intent == IntentSelect {
		return c.resolveSelection(ctx, sess, req.RecipeID)
	}

	switch req.Intent {
	case IntentFindByName:
		return c.nameSearch(ctx, sess, req.RecipeName)
	case IntentFindByCategory:
		res, err := c.search.SearchByTags(req.Category)
		return c.choiceReply(ctx, sess, res, err, strings.Join(req.Category, ", "))
	case IntentFindByIngredient:
		res, err := c.search.SearchByIngredients(req.Ingredient)
		return c.choiceReply(ctx, sess, res, err, strings.Join(req.Ingredient, ", "))
	case IntentGuidedSearch:
		res, err := c.search.StructuredSearch(req.Ingredient, req.Category, req.TimeLimit)
		return c.choiceReply(ctx, sess, res, err, strings.Join(append(req.Ingredient, req.Category...), ", "))
	case IntentMacroSearch:
		return c.macroSearch(ctx, sess, req)
	case IntentThemeMenu:
		return c.themeMenu(ctx, sess, req.MealTag)
	case IntentTopRated:
		res := c.search.TopRated()
		return c.choiceReply(ctx, sess, res, nil, "")
	default:
		return c.clearedReply(ctx, sess, StateIdle,
			"I didn't catch that. Could you tell me again what you're looking for?"), ErrAmbiguousInput
	}
}

func (c *ConversationService) nameSearch(ctx context.Context, sess Session, query string) (Reply, error) {
	res, err := c.search.SearchByName(query)
	switch {
	case errors.Is(err, ErrAmbiguousInput):
		return c.clearedReply(ctx, sess, StateIdle,
			"Which recipe should I look for?"), err
	case errors.Is(err, ErrNoMatch):
		return c.clearedReply(ctx, sess, StateNotFound,
			fmt.Sprintf("Sorry, I couldn't find any recipe matching %q. Try another name?", firstTerm(res.Terms, query))), err
	case err != nil:
		return Reply{}, err
	}

	if res.Recipe != nil {
		// Exactly one match: proceed straight to the detail, as if the user
		// had selected it by id.
		return c.resolvedReply(ctx, sess, *res.Recipe)
	}

	sess.State = StateDisambiguating
	sess.Query = strings.TrimSpace(query)
	sess.Choices = choiceIDs(res.Choices)
	sess.SelectedID = nil
	c.putSession(ctx, sess)
	return Reply{
		Message: fmt.Sprintf("I found a few recipes for %q. Which one would you like?", firstTerm(res.Terms, query)),
		Choices: res.Choices,
		State:   sess.State,
	}, nil
}

// choiceReply handles every multi-criteria flow: the top-K list is always
// presented as explicit choices, even when it collapses to a single
// candidate.
func (c *ConversationService) choiceReply(ctx context.Context, sess Session, res Result, err error, queried string) (Reply, error) {
	switch {
	case errors.Is(err, ErrAmbiguousInput):
		return c.clearedReply(ctx, sess, StateIdle,
			"I didn't catch that. Could you tell me again what you're looking for?"), err
	case errors.Is(err, ErrNoMatch):
		return c.clearedReply(ctx, sess, StateNotFound,
			fmt.Sprintf("Sorry, I couldn't find any recipe matching %s. Try something else?", orQueried(res.Terms, queried))), err
	case err != nil:
		return Reply{}, err
	}

	sess.State = StateDisambiguating
	sess.Query = queried
	sess.Choices = choiceIDs(res.Choices)
	sess.SelectedID = nil
	c.putSession(ctx, sess)

	msg := "Here are the best matches I found. Which one would you like?"
	if len(res.Terms) > 0 {
		msg = fmt.Sprintf("Here's what I found for %s. Which one would you like?", strings.Join(res.Terms, ", "))
	}
	return Reply{Message: msg, Choices: res.Choices, State: sess.State}, nil
}

func (c *ConversationService) macroSearch(ctx context.Context, sess Session, req Request) (Reply, error) {
	if req.MaxCalories == nil || req.MaxCarbs == nil || req.MaxFat == nil || req.MaxProtein == nil {
		return c.clearedReply(ctx, sess, StateIdle,
			"I need calorie, carb, fat and protein targets to match on nutrition."), ErrAmbiguousInput
	}
	res, err := c.search.MacroSearch(match.MacroTargets{
		Calories:      float64(*req.MaxCalories),
		Carbohydrates: float64(*req.MaxCarbs),
		TotalFat:      float64(*req.MaxFat),
		Protein:       float64(*req.MaxProtein),
	})
	if err != nil {
		return c.clearedReply(ctx, sess, StateNotFound,
			"Sorry, I couldn't find anything close to those targets."), err
	}

	sess.State = StateDisambiguating
	sess.Query = ""
	sess.Choices = choiceIDs(res.Choices)
	sess.SelectedID = nil
	c.putSession(ctx, sess)
	return Reply{
		Message: "Here are the closest matches to your nutrition targets. Which one would you like?",
		Choices: res.Choices,
		State:   sess.State,
	}, nil
}

func (c *ConversationService) themeMenu(ctx context.Context, sess Session, theme string) (Reply, error) {
	menu, err := c.search.ThemeMenu(theme)
	switch {
	case errors.Is(err, ErrAmbiguousInput):
		return c.clearedReply(ctx, sess, StateIdle,
			"Which meal theme would you like a menu for?"), err
	case errors.Is(err, ErrNoMatch):
		return c.clearedReply(ctx, sess, StateNotFound,
			fmt.Sprintf("Sorry, I couldn't put together a %s menu.", firstTerm([]string{menu.Theme}, theme))), err
	case err != nil:
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here's your %s menu:", menu.Theme)
	var choices []Choice
	for _, course := range menu.Courses {
		if course.Recipe == nil {
			fmt.Fprintf(&b, "\n- %s: nothing fitting, sorry", course.Course)
			continue
		}
		fmt.Fprintf(&b, "\n- %s: %s", course.Course, course.Recipe.Name)
		choices = append(choices, Choice{ID: course.Recipe.ID, Label: fmt.Sprintf("%s: %s", course.Course, recipeLabel(*course.Recipe))})
	}

	sess.State = StateDisambiguating
	sess.Query = menu.Theme
	sess.Choices = choiceIDs(choices)
	sess.SelectedID = nil
	c.putSession(ctx, sess)
	return Reply{Message: b.String(), Choices: choices, State: sess.State}, nil
}

func (c *ConversationService) resolveSelection(ctx context.Context, sess Session, id *int) (Reply, error) {
	if id == nil {
		return c.clearedReply(ctx, sess, StateIdle,
			"I couldn't tell which recipe you meant. Could you pick one of the options again?"), ErrInvalidSelection
	}
	recipe, err := c.search.Get(*id)
	if errors.Is(err, dataset.ErrNotFound) {
		return c.clearedReply(ctx, sess, StateIdle,
			"I couldn't find that recipe. Could you pick one of the options again?"), ErrInvalidSelection
	}
	if err != nil {
		return Reply{}, err
	}
	return c.resolvedReply(ctx, sess, recipe)
}

func (c *ConversationService) resolvedReply(ctx context.Context, sess Session, recipe model.Recipe) (Reply, error) {
	id := recipe.ID
	sess.State = StateResolved
	sess.Query = ""
	sess.Choices = nil
	sess.SelectedID = &id
	c.putSession(ctx, sess)
	return Reply{
		Message: fmt.Sprintf("Here's %s: %.1f/5 from %d votes, ready in %d minutes.",
			recipe.Name, recipe.RatingMean, recipe.VoteCount, recipe.Minutes),
		Recipe: &recipe,
		State:  sess.State,
	}, nil
}

// clearedReply resets the transient selection state and returns a plain
// message, leaving the conversation free to retry.
func (c *ConversationService) clearedReply(ctx context.Context, sess Session, state State, msg string) Reply {
	sess.State = state
	sess.Query = ""
	sess.Choices = nil
	sess.SelectedID = nil
	c.putSession(ctx, sess)
	return Reply{Message: msg, State: state}
}

// putSession persists best-effort: a store outage must not take down a turn
// that already has an answer.
func (c *ConversationService) putSession(ctx context.Context, sess Session) {
	if err := c.sessions.Put(ctx, sess); err != nil {
		c.logger.Warn("failed to store session",
			zap.String("conversation", sess.Conversation), zap.Error(err))
	}
}

func choiceIDs(choices []Choice) []int {
	ids := make([]int, len(choices))
	for i, ch := range choices {
		ids[i] = ch.ID
	}
	return ids
}

func firstTerm(terms []string, fallback string) string {
	for _, t := range terms {
		if t != "" {
			return t
		}
	}
	return fallback
}

func orQueried(terms []string, queried string) string {
	if len(terms) > 0 {
		return strings.Join(terms, ", ")
	}
	return queried
}
