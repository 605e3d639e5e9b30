package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListProductionPlans(c *gin.Context) {
	plans, err := s.productionSvc.ListPlans(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": plans})
}

func (s *Server) ListRecipeSummary(c *gin.Context) {
	totals, err := s.productionSvc.RecipeSummary(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": totals})
}
