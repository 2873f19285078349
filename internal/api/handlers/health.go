package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/magda-composer/internal/database"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API and its database
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		dbStatus = "connected"
		if err := database.Ping(h.db); err != nil {
			dbStatus = "unreachable"
		}
	}

	status := http.StatusOK
	health := "healthy"
	if dbStatus == "unreachable" {
		status = http.StatusServiceUnavailable
		health = "degraded"
	}

	c.JSON(status, gin.H{
		"status": health,
		"database": gin.H{
			"status": dbStatus,
		},
	})
}
