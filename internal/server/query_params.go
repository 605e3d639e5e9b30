package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/plantdesk/internal/export"
	reportdomain "github.com/smallbiznis/plantdesk/internal/report/domain"
)

type listQuery struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

func parseFormat(c *gin.Context) (export.Format, error) {
	return export.ParseFormat(c.Query("format"))
}

// respondReport writes report as json or, when ?format asks for a file, as a download.
func (s *Server) respondReport(c *gin.Context, kind reportdomain.Kind, format export.Format, report reportdomain.Tabular) {
	c.Set("export_format", string(format))
	if format == export.FormatJSON {
		c.JSON(http.StatusOK, gin.H{"data": report})
		return
	}

	file, err := s.exporter.Export(c.Request.Context(), string(kind), format, report.Table())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func pathID(c *gin.Context) string {
	return strings.TrimSpace(c.Param("id"))
}
