package server

import (
	"net/http"
	"time"

	activitydomain "github.com/brightsales/atlas/internal/activity/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/gin-gonic/gin"
)

type createActivityRequest struct {
	Type          string         `json:"type"`
	Details       string         `json:"details"`
	OccurredAt    string         `json:"occurredAt"`
	CustomFields  map[string]any `json:"customFields"`
	CompanyID     int64          `json:"companyId"`
	ContactID     *int64         `json:"contactId"`
	OpportunityID *int64         `json:"opportunityId"`
}

type updateActivityRequest struct {
	Type          *string        `json:"type"`
	Details       *string        `json:"details"`
	OccurredAt    *string        `json:"occurredAt"`
	CustomFields  map[string]any `json:"customFields"`
	CompanyID     *int64         `json:"companyId"`
	ContactID     *int64         `json:"contactId"`
	OpportunityID *int64         `json:"opportunityId"`
}

type bulkUpdateActivityRequest struct {
	IDs  []int64               `json:"ids"`
	Data updateActivityRequest `json:"data"`
}

func (s *Server) ListActivities(c *gin.Context) {
	var query struct {
		listing.Page
		Search        string `form:"search"`
		Type          string `form:"type"`
		CompanyID     int64  `form:"companyId"`
		ContactID     int64  `form:"contactId"`
		OpportunityID int64  `form:"opportunityId"`
		StartDate     string `form:"startDate"`
		EndDate       string `form:"endDate"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	startDate, err := parseOptionalTime(query.StartDate, false)
	if err != nil {
		AbortWithError(c, newValidationError("startDate", "invalid_start_date", "invalid startDate"))
		return
	}
	endDate, err := parseOptionalTime(query.EndDate, true)
	if err != nil {
		AbortWithError(c, newValidationError("endDate", "invalid_end_date", "invalid endDate"))
		return
	}

	resp, err := s.activitySvc.List(c.Request.Context(), activitydomain.ListActivityRequest{
		Page:          query.Page,
		Search:        query.Search,
		Type:          query.Type,
		CompanyID:     query.CompanyID,
		ContactID:     query.ContactID,
		OpportunityID: query.OpportunityID,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetActivityByID(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, activitydomain.ErrInvalidID)
		return
	}

	resp, err := s.activitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	occurredAt, err := parseOptionalTime(req.OccurredAt, false)
	if err != nil {
		AbortWithError(c, newValidationError("occurredAt", "invalid_occurred_at", "invalid occurredAt"))
		return
	}

	resp, err := s.activitySvc.Create(c.Request.Context(), activitydomain.CreateActivityRequest{
		Type:          req.Type,
		Details:       req.Details,
		OccurredAt:    occurredAt,
		CustomFields:  req.CustomFields,
		CompanyID:     req.CompanyID,
		ContactID:     req.ContactID,
		OpportunityID: req.OpportunityID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateActivity(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, activitydomain.ErrInvalidID)
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update, err := activityUpdate(req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.activitySvc.Update(c.Request.Context(), id, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteActivity(c *gin.Context) {
	id, err := parseIDParam(c.Param("id"))
	if err != nil {
		AbortWithError(c, activitydomain.ErrInvalidID)
		return
	}

	if err := s.activitySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) BulkDeleteActivities(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	count, err := s.activitySvc.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) BulkUpdateActivities(c *gin.Context) {
	var req bulkUpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update, err := activityUpdate(req.Data)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	count, err := s.activitySvc.BulkUpdate(c.Request.Context(), req.IDs, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func activityUpdate(req updateActivityRequest) (activitydomain.UpdateActivityRequest, error) {
	var occurredAt *time.Time
	if req.OccurredAt != nil {
		parsed, err := parseOptionalTime(*req.OccurredAt, false)
		if err != nil {
			return activitydomain.UpdateActivityRequest{}, newValidationError("occurredAt", "invalid_occurred_at", "invalid occurredAt")
		}
		occurredAt = parsed
	}

	return activitydomain.UpdateActivityRequest{
		Type:          req.Type,
		Details:       req.Details,
		OccurredAt:    occurredAt,
		CustomFields:  req.CustomFields,
		CompanyID:     req.CompanyID,
		ContactID:     req.ContactID,
		OpportunityID: req.OpportunityID,
	}, nil
}

func isActivityValidationError(err error) bool {
	switch err {
	case activitydomain.ErrInvalidType,
		activitydomain.ErrInvalidCompany,
		activitydomain.ErrInvalidContact,
		activitydomain.ErrInvalidOpportunity,
		activitydomain.ErrInvalidID,
		activitydomain.ErrEmptyUpdate,
		activitydomain.ErrEmptyIDSet:
		return true
	default:
		return false
	}
}
