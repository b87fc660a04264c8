package server

import (
	"net/http"

	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/gin-gonic/gin"
)

type createContactRequest struct {
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Role         string         `json:"role"`
	ExternalID   string         `json:"externalId"`
	CustomFields map[string]any `json:"customFields"`
	CompanyID    int64          `json:"companyId"`
}

type updateContactRequest struct {
	FirstName    *string        `json:"firstName"`
	LastName     *string        `json:"lastName"`
	Email        *string        `json:"email"`
	Phone        *string        `json:"phone"`
	Role         *string        `json:"role"`
	ExternalID   *string        `json:"externalId"`
	CustomFields map[string]any `json:"customFields"`
	CompanyID    *int64         `json:"companyId"`
}

type bulkUpdateContactRequest struct {
	IDs  []int64              `json:"ids"`
	Data updateContactRequest `json:"data"`
}

func (s *Server) ListContacts(c *gin.Context) {
	var query struct {
		listing.Page
		Search    string `form:"search"`
		Role      string `form:"role"`
		CompanyID int64  `form:"companyId"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.contactSvc.List(c.Request.Context(), contactdomain.ListContactRequest{
		Page:      query.Page,
		Search:    query.Search,
		Role:      query.Role,
		CompanyID: query.CompanyID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetContactByID(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, contactdomain.ErrInvalidID)
		return
	}

	resp, err := s.contactSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateContact(c *gin.Context) {
	var req createContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.contactSvc.Create(c.Request.Context(), contactdomain.CreateContactRequest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		ExternalID:   req.ExternalID,
		CustomFields: req.CustomFields,
		CompanyID:    req.CompanyID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateContact(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, contactdomain.ErrInvalidID)
		return
	}

	var req updateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.contactSvc.Update(c.Request.Context(), id, contactUpdate(req))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteContact(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, contactdomain.ErrInvalidID)
		return
	}

	if err := s.contactSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) BulkDeleteContacts(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	count, err := s.contactSvc.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) BulkUpdateContacts(c *gin.Context) {
	var req bulkUpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	count, err := s.contactSvc.BulkUpdate(c.Request.Context(), req.IDs, contactUpdate(req.Data))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func contactUpdate(req updateContactRequest) contactdomain.UpdateContactRequest {
	return contactdomain.UpdateContactRequest{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		ExternalID:   req.ExternalID,
		CustomFields: req.CustomFields,
		CompanyID:    req.CompanyID,
	}
}

func isContactValidationError(err error) bool {
	switch err {
	case contactdomain.ErrInvalidFirstName,
		contactdomain.ErrInvalidLastName,
		contactdomain.ErrInvalidCompany,
		contactdomain.ErrInvalidID,
		contactdomain.ErrEmptyUpdate,
		contactdomain.ErrEmptyIDSet:
		return true
	default:
		return false
	}
}
