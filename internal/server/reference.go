package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListRecipes(c *gin.Context) {
	recipes, err := s.refrepo.ListRecipes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": recipes})
}

func (s *Server) ListServiceTypes(c *gin.Context) {
	serviceTypes, err := s.refrepo.ListServiceTypes(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": serviceTypes})
}

func (s *Server) ListSites(c *gin.Context) {
	sites, err := s.refrepo.ListSites(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": sites})
}
