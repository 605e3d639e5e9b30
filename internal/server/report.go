package server

import (
	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
	reportdomain "github.com/smallbiznis/plantdesk/internal/report/domain"
)

func (s *Server) CustomerDirectoryReport(c *gin.Context) {
	format, err := parseFormat(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	activity, err := customerdomain.ParseActivity(c.Query("activity"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.reportSvc.CustomerDirectory(c.Request.Context(), activity)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondReport(c, reportdomain.KindCustomers, format, report)
}

func (s *Server) BalanceReport(c *gin.Context) {
	format, err := parseFormat(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.reportSvc.BalanceReport(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondReport(c, reportdomain.KindBalances, format, report)
}

func (s *Server) CustomerStatementReport(c *gin.Context) {
	format, err := parseFormat(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.reportSvc.CustomerStatement(c.Request.Context(), pathID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondReport(c, reportdomain.KindStatement, format, report)
}

func (s *Server) ProductionReport(c *gin.Context) {
	format, err := parseFormat(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.reportSvc.ProductionReport(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondReport(c, reportdomain.KindProduction, format, report)
}

func (s *Server) OrderBoardReport(c *gin.Context) {
	format, err := parseFormat(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	report, err := s.reportSvc.OrderBoard(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondReport(c, reportdomain.KindOrders, format, report)
}
