package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ledgerdomain "github.com/smallbiznis/plantdesk/internal/ledger/domain"
)

func (s *Server) RecordLedgerEntry(c *gin.Context) {
	var req ledgerdomain.RecordEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.CustomerID = pathID(c)

	entry, err := s.ledgerSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": entry})
}

func (s *Server) ListLedgerEntries(c *gin.Context) {
	entries, err := s.ledgerSvc.ListEntries(c.Request.Context(), pathID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (s *Server) GetCustomerBalance(c *gin.Context) {
	balance, err := s.ledgerSvc.Balance(c.Request.Context(), pathID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": balance})
}

func isLedgerValidationError(err error) bool {
	switch err {
	case ledgerdomain.ErrInvalidKind,
		ledgerdomain.ErrInvalidAmount,
		ledgerdomain.ErrInvalidAmountPrecision:
		return true
	default:
		return false
	}
}
