package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	donationdomain "github.com/rifasolidaria/rifa/internal/donation/domain"
)

func (s *Server) CreateDonation(c *gin.Context) {
	var req donationdomain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	donation, err := s.donationSvc.Checkout(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, donation)
}

func (s *Server) GetDonationByID(c *gin.Context) {
	donation, err := s.donationSvc.Get(c.Request.Context(), donationdomain.GetDonationRequest{
		ID: c.Param("id"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, donation)
}

type updateDonationStatusRequest struct {
	Status    donationdomain.Status `json:"status" binding:"required"`
	PaymentID string                `json:"paymentId"`
}

func (s *Server) UpdateDonationStatus(c *gin.Context) {
	var req updateDonationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	_, err := s.donationSvc.UpdateStatus(c.Request.Context(), donationdomain.UpdateStatusRequest{
		ID:        c.Param("id"),
		Status:    req.Status,
		PaymentID: req.PaymentID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
