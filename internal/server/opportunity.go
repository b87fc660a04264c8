package server

import (
	"net/http"
	"time"

	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/gin-gonic/gin"
)

type createOpportunityRequest struct {
	Title        string         `json:"title"`
	Amount       *float64       `json:"amount"`
	Status       string         `json:"status"`
	CloseDate    string         `json:"closeDate"`
	ExternalID   string         `json:"externalId"`
	CustomFields map[string]any `json:"customFields"`
	CompanyID    int64          `json:"companyId"`
	ContactID    *int64         `json:"contactId"`
}

type updateOpportunityRequest struct {
	Title        *string        `json:"title"`
	Amount       *float64       `json:"amount"`
	Status       *string        `json:"status"`
	CloseDate    *string        `json:"closeDate"`
	ExternalID   *string        `json:"externalId"`
	CustomFields map[string]any `json:"customFields"`
	CompanyID    *int64         `json:"companyId"`
	ContactID    *int64         `json:"contactId"`
}

type bulkUpdateOpportunityRequest struct {
	IDs  []int64                  `json:"ids"`
	Data updateOpportunityRequest `json:"data"`
}

func (s *Server) ListOpportunities(c *gin.Context) {
	var query struct {
		listing.Page
		Search    string `form:"search"`
		Status    string `form:"status"`
		CompanyID int64  `form:"companyId"`
		ContactID int64  `form:"contactId"`
		MinAmount string `form:"minAmount"`
		MaxAmount string `form:"maxAmount"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	minAmount, err := parseOptionalFloat(query.MinAmount)
	if err != nil {
		AbortWithError(c, newValidationError("minAmount", "invalid_min_amount", "invalid minAmount"))
		return
	}
	maxAmount, err := parseOptionalFloat(query.MaxAmount)
	if err != nil {
		AbortWithError(c, newValidationError("maxAmount", "invalid_max_amount", "invalid maxAmount"))
		return
	}

	resp, err := s.opportunitySvc.List(c.Request.Context(), opportunitydomain.ListOpportunityRequest{
		Page:      query.Page,
		Search:    query.Search,
		Status:    query.Status,
		CompanyID: query.CompanyID,
		ContactID: query.ContactID,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOpportunityByID(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, opportunitydomain.ErrInvalidID)
		return
	}

	resp, err := s.opportunitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateOpportunity(c *gin.Context) {
	var req createOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	closeDate, err := parseOptionalTime(req.CloseDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("closeDate", "invalid_close_date", "invalid closeDate"))
		return
	}

	resp, err := s.opportunitySvc.Create(c.Request.Context(), opportunitydomain.CreateOpportunityRequest{
		Title:        req.Title,
		Amount:       req.Amount,
		Status:       req.Status,
		CloseDate:    closeDate,
		ExternalID:   req.ExternalID,
		CustomFields: req.CustomFields,
		CompanyID:    req.CompanyID,
		ContactID:    req.ContactID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateOpportunity(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, opportunitydomain.ErrInvalidID)
		return
	}

	var req updateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update, err := opportunityUpdate(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.opportunitySvc.Update(c.Request.Context(), id, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteOpportunity(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, opportunitydomain.ErrInvalidID)
		return
	}

	if err := s.opportunitySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) BulkDeleteOpportunities(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	count, err := s.opportunitySvc.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) BulkUpdateOpportunities(c *gin.Context) {
	var req bulkUpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update, err := opportunityUpdate(req.Data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	count, err := s.opportunitySvc.BulkUpdate(c.Request.Context(), req.IDs, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func opportunityUpdate(req updateOpportunityRequest) (opportunitydomain.UpdateOpportunityRequest, error) {
	var closeDate *time.Time
	if req.CloseDate != nil {
		parsed, err := parseOptionalTime(*req.CloseDate, false)
		if err != nil {
			return opportunitydomain.UpdateOpportunityRequest{}, newValidationError("closeDate", "invalid_close_date", "invalid closeDate")
		}
		closeDate = parsed
	}

	return opportunitydomain.UpdateOpportunityRequest{
		Title:        req.Title,
		Amount:       req.Amount,
		Status:       req.Status,
		CloseDate:    closeDate,
		ExternalID:   req.ExternalID,
		CustomFields: req.CustomFields,
		CompanyID:    req.CompanyID,
		ContactID:    req.ContactID,
	}, nil
}

func isOpportunityValidationError(err error) bool {
	switch err {
	case opportunitydomain.ErrInvalidTitle,
		opportunitydomain.ErrInvalidStatus,
		opportunitydomain.ErrInvalidCompany,
		opportunitydomain.ErrInvalidContact,
		opportunitydomain.ErrInvalidID,
		opportunitydomain.ErrEmptyUpdate,
		opportunitydomain.ErrEmptyIDSet:
		return true
	default:
		return false
	}
}
