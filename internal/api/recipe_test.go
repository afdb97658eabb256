package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmarket/fridgechef/internal/model"
)

func getJSON(t *testing.T, engine http.Handler, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestGetRecipeByID(t *testing.T) {
	engine := testEngine(t, false)

	var resp struct {
		Recipe model.Recipe `json:"recipe"`
	}
	w := getJSON(t, engine, "/api/v1/recipes/2", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, resp.Recipe.ID)
	assert.Equal(t, "White Bread", resp.Recipe.Name)
}

func TestGetRecipeBadID(t *testing.T) {
	engine := testEngine(t, false)

	w := getJSON(t, engine, "/api/v1/recipes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRecipeNotFound(t *testing.T) {
	engine := testEngine(t, false)

	w := getJSON(t, engine, "/api/v1/recipes/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTopRatedEndpoint(t *testing.T) {
	engine := testEngine(t, false)

	var resp struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	w := getJSON(t, engine, "/api/v1/recipes/top", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Recipes, 5)
	// 4.8/50 outranks 4.8/2.
	assert.Equal(t, "White Bread", resp.Recipes[0].Name)
	assert.Equal(t, "Garlic Bread", resp.Recipes[1].Name)
}

func TestRecipeRoutesDegraded(t *testing.T) {
	engine := testEngine(t, true)

	w := getJSON(t, engine, "/api/v1/recipes/2", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = getJSON(t, engine, "/api/v1/recipes/top", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
