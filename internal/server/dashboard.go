package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

type dashboardStatsResponse struct {
	Companies     int64   `json:"companies"`
	Contacts      int64   `json:"contacts"`
	Opportunities int64   `json:"opportunities"`
	Activities    int64   `json:"activities"`
	OpenPipeline  float64 `json:"openPipeline"`
}

func (s *Server) GetDashboardStats(c *gin.Context) {
	var stats dashboardStatsResponse

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		stats.Companies, err = s.companyRepo.Count(ctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		stats.Contacts, err = s.contactRepo.Count(ctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		stats.Opportunities, err = s.opportunityRepo.Count(ctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		stats.Activities, err = s.activityRepo.Count(ctx, s.db)
		return err
	})
	g.Go(func() (err error) {
		stats.OpenPipeline, err = s.opportunityRepo.SumOpenAmount(ctx, s.db)
		return err
	})
	if err := g.Wait(); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
