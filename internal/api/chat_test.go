package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmarket/fridgechef/internal/dataset"
	"github.com/greenmarket/fridgechef/internal/model"
	"github.com/greenmarket/fridgechef/internal/service"
)

func testRepo() *dataset.Repository {
	return dataset.NewRepository([]model.Recipe{
		{Name: "Banana Bread", Minutes: 60, RatingMean: 4.5, VoteCount: 10,
			Tags: []string{"breads", "breakfast"}, Ingredients: []string{"banana", "flour", "sugar"}},
		{Name: "Garlic Bread", Minutes: 15, RatingMean: 4.8, VoteCount: 2,
			Tags: []string{"breads", "italian"}, Ingredients: []string{"bread", "garlic", "butter"}},
		{Name: "White Bread", Minutes: 180, RatingMean: 4.8, VoteCount: 50,
			Tags: []string{"breads"}, Ingredients: []string{"flour", "yeast", "water"}},
		{Name: "Chicken Curry", Minutes: 45, RatingMean: 4.2, VoteCount: 30,
			Tags: []string{"main-dish", "indian"}, Ingredients: []string{"chicken", "curry powder", "onion"}},
		{Name: "Pancakes", Minutes: 20, RatingMean: 4.0, VoteCount: 80,
			Tags: []string{"breakfast"}, Ingredients: []string{"flour", "egg", "milk"}},
	})
}

// testEngine wires the v1 routes the way the router does, over an in-memory
// fixture. A nil-search variant models a failed dataset load.
func testEngine(t *testing.T, degraded bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var search *service.SearchService
	if !degraded {
		search = service.NewSearchService(testRepo(), nil)
	}
	conv := service.NewConversationService(search, service.NewMemorySessionStore(), nil)

	engine := gin.New()
	NewHealthHandler(conv).RegisterRoutes(engine)
	v1 := engine.Group("/api/v1")
	NewChatHandler(conv, nil).RegisterRoutes(v1)
	NewRecipeHandler(search).RegisterRoutes(v1)
	return engine
}

func postChat(t *testing.T, engine *gin.Engine, path, body string) (*httptest.ResponseRecorder, ChatResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp ChatResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestChatNameSearchReturnsChoices(t *testing.T) {
	engine := testEngine(t, false)

	w, resp := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "find_by_name", "recipe_name": "bread"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c1", resp.Conversation)
	assert.Equal(t, "disambiguating", resp.State)
	assert.Nil(t, resp.Recipe)
	require.Len(t, resp.Choices, 3)
	assert.Equal(t, 2, resp.Choices[0].ID)
}

func TestChatGeneratesConversationID(t *testing.T) {
	engine := testEngine(t, false)

	w, resp := postChat(t, engine, "/api/v1/chat",
		`{"intent": "find_by_name", "recipe_name": "curry"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.Conversation)
	assert.Equal(t, "resolved", resp.State)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, "Chicken Curry", resp.Recipe.Name)
}

func TestChatCategoryAcceptsSingleString(t *testing.T) {
	engine := testEngine(t, false)

	w, resp := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "find_by_category", "category": "breakfast"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disambiguating", resp.State)
	require.Len(t, resp.Choices, 2)
}

func TestChatSelectionByNumericString(t *testing.T) {
	engine := testEngine(t, false)

	_, first := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "find_by_name", "recipe_name": "bread"}`)
	require.Equal(t, "disambiguating", first.State)

	w, resp := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "select", "recipe_id": "3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "resolved", resp.State)
	require.NotNil(t, resp.Recipe)
	assert.Equal(t, 3, resp.Recipe.ID)
}

func TestChatNullTokenRunsRequestedSearch(t *testing.T) {
	engine := testEngine(t, false)

	// Upstream extractors fill empty slots with explicit nulls; a null token
	// must not turn the search into a selection of recipe 0.
	w, resp := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "find_by_name", "recipe_name": "bread", "recipe_id": null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "disambiguating", resp.State)
	assert.Nil(t, resp.Recipe)
	require.Len(t, resp.Choices, 3)
}

func TestChatNonNumericTokenIsInvalidSelection(t *testing.T) {
	engine := testEngine(t, false)

	// A junk token is a conversational miss, not a malformed request.
	w, resp := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "find_by_name", "recipe_name": "bread", "recipe_id": "the first one"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "idle", resp.State)
	assert.Nil(t, resp.Recipe)
	assert.NotEmpty(t, resp.Message)
}

func TestChatNoMatchIsNormalReply(t *testing.T) {
	engine := testEngine(t, false)

	w, resp := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "find_by_name", "recipe_name": "qqqqqqqq"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "not_found", resp.State)
	assert.Contains(t, resp.Message, "qqqqqqqq")
}

func TestChatMissingIntentIsBadRequest(t *testing.T) {
	engine := testEngine(t, false)

	w, _ := postChat(t, engine, "/api/v1/chat/c1", `{"recipe_name": "bread"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatMalformedJSONIsBadRequest(t *testing.T) {
	engine := testEngine(t, false)

	w, _ := postChat(t, engine, "/api/v1/chat/c1", `{"intent":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatDegradedModeApologizes(t *testing.T) {
	engine := testEngine(t, true)

	w, resp := postChat(t, engine, "/api/v1/chat/c1",
		`{"intent": "find_by_name", "recipe_name": "bread"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, resp.Message, "can't access the recipe database")
	assert.Empty(t, resp.Choices)
}
