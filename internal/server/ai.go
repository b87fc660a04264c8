package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type aiSearchRequest struct {
	Query string `json:"query"`
}

type aiCompleteRequest struct {
	Prompt string `json:"prompt"`
}

type aiEmbedRequest struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

func (s *Server) AISearch(c *gin.Context) {
	var req aiSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.aiSvc.Search(c.Request.Context(), req.Query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) AIComplete(c *gin.Context) {
	var req aiCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.aiSvc.Complete(c.Request.Context(), req.Prompt)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": resp})
}

// AIEmbed queues a text for background embedding. The job is processed
// asynchronously so the response only carries the job id.
func (s *Server) AIEmbed(c *gin.Context) {
	var req aiEmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		AbortWithError(c, newValidationError("text", "empty_text", "text is required"))
		return
	}

	jobID, err := s.aiSvc.EnqueueEmbedding(c.Request.Context(), req.Text, req.Metadata)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"jobId": jobID})
}
