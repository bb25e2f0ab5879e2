package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	campaigndomain "github.com/rifasolidaria/rifa/internal/campaign/domain"
)

func (s *Server) ListCampaigns(c *gin.Context) {
	campaigns, err := s.campaignSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaigns)
}

func (s *Server) GetCampaignByID(c *gin.Context) {
	campaign, err := s.campaignSvc.GetByID(c.Request.Context(), campaigndomain.GetCampaignRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (s *Server) GetCampaignStats(c *gin.Context) {
	stats, err := s.campaignSvc.Stats(c.Request.Context(), campaigndomain.GetCampaignRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
