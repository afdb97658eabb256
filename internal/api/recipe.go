package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/greenmarket/fridgechef/internal/dataset"
	"github.com/greenmarket/fridgechef/internal/service"
)

// RecipeHandler handles direct recipe lookups outside the conversation.
type RecipeHandler struct {
	search *service.SearchService
}

// NewRecipeHandler creates a new RecipeHandler instance. A nil search service
// means the dataset failed to load; every route then answers 503.
func NewRecipeHandler(search *service.SearchService) *RecipeHandler {
	return &RecipeHandler{search: search}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/top", h.TopRated)
		recipes.GET("/:id", h.GetRecipe)
	}
}

// GetRecipe returns the recipe behind a stable id.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe dataset unavailable"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe id must be an integer"})
		return
	}

	recipe, err := h.search.Get(id)
	if errors.Is(err, dataset.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// TopRated returns the five best recipes by rating, then vote count.
func (h *RecipeHandler) TopRated(c *gin.Context) {
	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recipe dataset unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": h.search.TopRatedRecipes()})
}
