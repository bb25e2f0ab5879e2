package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	campaigndomain "github.com/rifasolidaria/rifa/internal/campaign/domain"
	donationdomain "github.com/rifasolidaria/rifa/internal/donation/domain"
	pixdomain "github.com/rifasolidaria/rifa/internal/pix/domain"
	raffledomain "github.com/rifasolidaria/rifa/internal/raffle/domain"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest = errors.New("invalid_request")
	ErrNotFound       = errors.New("not_found")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError is the only place internal errors become client responses.
// Messages are user-facing Portuguese; internal detail stays in the logs.
func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "Dados inválidos. Verifique os campos e tente novamente.",
		}
	case errors.Is(err, campaigndomain.ErrNotFound),
		errors.Is(err, donationdomain.ErrCampaignNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "Campanha não encontrada.",
		}
	case errors.Is(err, donationdomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "Doação não encontrada.",
		}
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "Registro não encontrado.",
		}
	case errors.Is(err, donationdomain.ErrPaymentCreateFailed),
		errors.Is(err, pixdomain.ErrProvider),
		errors.Is(err, pixdomain.ErrNotConfigured):
		return http.StatusInternalServerError, errorPayload{
			Type:    "gateway_error",
			Message: "Erro ao criar pagamento PIX. Tente novamente.",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "Erro interno. Tente novamente em instantes.",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, campaigndomain.ErrInvalidID),
		errors.Is(err, donationdomain.ErrInvalidID),
		errors.Is(err, donationdomain.ErrInvalidAmount),
		errors.Is(err, donationdomain.ErrInvalidStatus),
		errors.Is(err, raffledomain.ErrInvalidID),
		errors.Is(err, raffledomain.ErrInvalidCount):
		return true
	default:
		return false
	}
}

func classifyErrorForLog(err error) (string, string) {
	if err == nil {
		return "", ""
	}
	status, payload := mapError(err)
	switch {
	case status >= 500:
		return "server_error", payload.Type
	case status >= 400:
		return "client_error", payload.Type
	default:
		return "", payload.Type
	}
}
