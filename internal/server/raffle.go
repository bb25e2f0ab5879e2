package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	raffledomain "github.com/rifasolidaria/rifa/internal/raffle/domain"
)

func (s *Server) ListRaffleNumbersByDonation(c *gin.Context) {
	donationID, err := snowflake.ParseString(strings.TrimSpace(c.Param("donationId")))
	if err != nil {
		AbortWithError(c, raffledomain.ErrInvalidID)
		return
	}

	numbers, err := s.raffleSvc.ListByDonation(c.Request.Context(), donationID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, numbers)
}
