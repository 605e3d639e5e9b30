package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/plantdesk/internal/customer/domain"
)

type createCustomerRequest struct {
	Name      string `json:"name"`
	TaxNumber string `json:"tax_number"`
	TaxOffice string `json:"tax_office"`
	Phone     string `json:"phone"`
	Fax       string `json:"fax"`
	Address   string `json:"address"`
	City      string `json:"city"`
	District  string `json:"district"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:      strings.TrimSpace(req.Name),
		TaxNumber: strings.TrimSpace(req.TaxNumber),
		TaxOffice: strings.TrimSpace(req.TaxOffice),
		Phone:     strings.TrimSpace(req.Phone),
		Fax:       strings.TrimSpace(req.Fax),
		Address:   strings.TrimSpace(req.Address),
		City:      strings.TrimSpace(req.City),
		District:  strings.TrimSpace(req.District),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req customerdomain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = pathID(c)

	resp, err := s.customerSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		listQuery
		Name     string `form:"name"`
		Activity string `form:"activity"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	activity, err := customerdomain.ParseActivity(query.Activity)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.customerSvc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Name:      strings.TrimSpace(query.Name),
		Activity:  activity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), customerdomain.GetCustomerRequest{
		ID: pathID(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerActivity(c *gin.Context) {
	resp, err := s.customerSvc.Activity(c.Request.Context(), customerdomain.GetCustomerRequest{
		ID: pathID(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCustomerValidationError(err error) bool {
	switch err {
	case customerdomain.ErrInvalidName,
		customerdomain.ErrInvalidActivity,
		customerdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
