package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-vault/backend/internal/model"
	"github.com/pageza/recipe-vault/backend/internal/service"
)

// CategorizeRequest lists ingredient names to categorize.
type CategorizeRequest struct {
	Names []string `json:"names" binding:"required"`
}

// CategorizedIngredient pairs a name with its inferred category.
type CategorizedIngredient struct {
	Name     string         `json:"name"`
	Category model.Category `json:"category"`
}

// RegisterIngredientRoutes mounts the stateless ingredient helpers.
func RegisterIngredientRoutes(router *gin.RouterGroup) {
	router.POST("/ingredients/categorize", CategorizeIngredients)
}

func CategorizeIngredients(c *gin.Context) {
	var req CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	out := make([]CategorizedIngredient, 0, len(req.Names))
	for _, name := range req.Names {
		out = append(out, CategorizedIngredient{Name: name, Category: service.Categorize(name)})
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": out})
}
