package server

import (
	"net/http"

	companydomain "github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/gin-gonic/gin"
)

type createCompanyRequest struct {
	Name         string         `json:"name"`
	Industry     string         `json:"industry"`
	Website      string         `json:"website"`
	ExternalID   string         `json:"externalId"`
	CustomFields map[string]any `json:"customFields"`
}

type updateCompanyRequest struct {
	Name         *string        `json:"name"`
	Industry     *string        `json:"industry"`
	Website      *string        `json:"website"`
	ExternalID   *string        `json:"externalId"`
	CustomFields map[string]any `json:"customFields"`
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

type bulkUpdateCompanyRequest struct {
	IDs  []int64              `json:"ids"`
	Data updateCompanyRequest `json:"data"`
}

func (s *Server) ListCompanies(c *gin.Context) {
	var query struct {
		listing.Page
		Search   string `form:"search"`
		Industry string `form:"industry"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.List(c.Request.Context(), companydomain.ListCompanyRequest{
		Page:     query.Page,
		Search:   query.Search,
		Industry: query.Industry,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetCompanyByID(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, companydomain.ErrInvalidID)
		return
	}

	resp, err := s.companySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateCompany(c *gin.Context) {
	var req createCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Create(c.Request.Context(), companydomain.CreateCompanyRequest{
		Name:         req.Name,
		Industry:     req.Industry,
		Website:      req.Website,
		ExternalID:   req.ExternalID,
		CustomFields: req.CustomFields,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateCompany(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, companydomain.ErrInvalidID)
		return
	}

	var req updateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.companySvc.Update(c.Request.Context(), id, companyUpdate(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteCompany(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, companydomain.ErrInvalidID)
		return
	}

	if err := s.companySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) BulkDeleteCompanies(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	count, err := s.companySvc.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) BulkUpdateCompanies(c *gin.Context) {
	var req bulkUpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	count, err := s.companySvc.BulkUpdate(c.Request.Context(), req.IDs, companyUpdate(req.Data))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func companyUpdate(req updateCompanyRequest) companydomain.UpdateCompanyRequest {
	return companydomain.UpdateCompanyRequest{
		Name:         req.Name,
		Industry:     req.Industry,
		Website:      req.Website,
		ExternalID:   req.ExternalID,
		CustomFields: req.CustomFields,
	}
}

func isCompanyValidationError(err error) bool {
	switch err {
	case companydomain.ErrInvalidName,
		companydomain.ErrInvalidID,
		companydomain.ErrEmptyUpdate,
		companydomain.ErrEmptyIDSet:
		return true
	default:
		return false
	}
}
