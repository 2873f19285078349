package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Conceptual-Machines/magda-composer/internal/middleware"
	"github.com/Conceptual-Machines/magda-composer/internal/models"
	"github.com/Conceptual-Machines/magda-composer/internal/services"
	"github.com/gin-gonic/gin"
)

type CompositionHandler struct {
	store    services.CompositionStore
	composer *services.ComposerService
}

// NewCompositionHandler creates the handler. A nil store means persistence
// is disabled and every route answers 503.
func NewCompositionHandler(store services.CompositionStore, composer *services.ComposerService) *CompositionHandler {
	return &CompositionHandler{store: store, composer: composer}
}

func (h *CompositionHandler) available(c *gin.Context) bool {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Persistence is disabled (DATABASE_URL not set)"})
		return false
	}
	return true
}

type CreateCompositionRequest struct {
	Name string `json:"name" binding:"required"`
	DSL  string `json:"dsl" binding:"required"`
}

func (h *CompositionHandler) Create(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req CreateCompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if len(req.DSL) > maxDSLLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "DSL script too long"})
		return
	}

	userID, _ := middleware.GetCurrentUser(c)
	composition, err := h.composer.BuildComposition(callerContext(c), req.Name, req.DSL, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.Save(c.Request.Context(), composition); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("💾 Saved composition %s (%d events) for user %s", composition.PublicID, composition.EventCount, userID)
	c.JSON(http.StatusCreated, composition)
}

func (h *CompositionHandler) List(c *gin.Context) {
	if !h.available(c) {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	compositions, err := h.store.List(c.Request.Context(), services.ClampListLimit(limit))
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]models.CompositionSummary, 0, len(compositions))
	for i := range compositions {
		summaries = append(summaries, compositions[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{"compositions": summaries})
}

func (h *CompositionHandler) Get(c *gin.Context) {
	if !h.available(c) {
		return
	}

	composition, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, composition)
}

func (h *CompositionHandler) Delete(c *gin.Context) {
	if !h.available(c) {
		return
	}

	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Composition deleted"})
}
