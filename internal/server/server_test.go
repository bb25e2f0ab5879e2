package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	campaigndomain "github.com/rifasolidaria/rifa/internal/campaign/domain"
	donationdomain "github.com/rifasolidaria/rifa/internal/donation/domain"
	raffledomain "github.com/rifasolidaria/rifa/internal/raffle/domain"
	"github.com/stretchr/testify/require"
)

type stubCampaignService struct {
	campaign campaigndomain.Campaign
	stats    campaigndomain.Stats
	err      error
}

func (s *stubCampaignService) List(ctx context.Context) ([]campaigndomain.Campaign, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []campaigndomain.Campaign{s.campaign}, nil
}

func (s *stubCampaignService) GetByID(ctx context.Context, req campaigndomain.GetCampaignRequest) (campaigndomain.Campaign, error) {
	if s.err != nil {
		return campaigndomain.Campaign{}, s.err
	}
	return s.campaign, nil
}

func (s *stubCampaignService) Stats(ctx context.Context, req campaigndomain.GetCampaignRequest) (campaigndomain.Stats, error) {
	if s.err != nil {
		return campaigndomain.Stats{}, s.err
	}
	return s.stats, nil
}

func (s *stubCampaignService) Recompute(ctx context.Context, campaignID snowflake.ID) error {
	return s.err
}

type stubDonationService struct {
	donation donationdomain.Donation
	err      error
}

func (s *stubDonationService) Checkout(ctx context.Context, req donationdomain.CheckoutRequest) (donationdomain.Donation, error) {
	if s.err != nil {
		return donationdomain.Donation{}, s.err
	}
	return s.donation, nil
}

func (s *stubDonationService) Get(ctx context.Context, req donationdomain.GetDonationRequest) (donationdomain.Donation, error) {
	if s.err != nil {
		return donationdomain.Donation{}, s.err
	}
	return s.donation, nil
}

func (s *stubDonationService) UpdateStatus(ctx context.Context, req donationdomain.UpdateStatusRequest) (donationdomain.Donation, error) {
	if s.err != nil {
		return donationdomain.Donation{}, s.err
	}
	return s.donation, nil
}

type stubRaffleService struct {
	numbers []raffledomain.RaffleNumber
	err     error
}

func (s *stubRaffleService) Allocate(ctx context.Context, req raffledomain.AllocateRequest) ([]raffledomain.RaffleNumber, error) {
	return s.numbers, s.err
}

func (s *stubRaffleService) ListByDonation(ctx context.Context, donationID snowflake.ID) ([]raffledomain.RaffleNumber, error) {
	return s.numbers, s.err
}

func (s *stubRaffleService) MarkWinner(ctx context.Context, id snowflake.ID) error {
	return s.err
}

func newTestServer(campaignSvc campaigndomain.Service, donationSvc donationdomain.Service, raffleSvc raffledomain.Service) *Server {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	svc := &Server{
		engine:      engine,
		campaignSvc: campaignSvc,
		donationSvc: donationSvc,
		raffleSvc:   raffleSvc,
	}
	svc.registerAPIRoutes()
	return svc
}

func performRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestCreateDonationMalformedBody(t *testing.T) {
	s := newTestServer(&stubCampaignService{}, &stubDonationService{}, &stubRaffleService{})

	w := performRequest(s, http.MethodPost, "/api/donations", `{"donorName":""}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	payload := decodeError(t, w)
	require.Equal(t, "validation_error", payload.Type)
	require.Contains(t, payload.Message, "Dados inválidos")
}

func TestGetCampaignNotFound(t *testing.T) {
	s := newTestServer(
		&stubCampaignService{err: campaigndomain.ErrNotFound},
		&stubDonationService{},
		&stubRaffleService{},
	)

	w := performRequest(s, http.MethodGet, "/api/campaigns/123", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	payload := decodeError(t, w)
	require.Equal(t, "not_found", payload.Type)
	require.Equal(t, "Campanha não encontrada.", payload.Message)
}

func TestGetDonationNotFound(t *testing.T) {
	s := newTestServer(
		&stubCampaignService{},
		&stubDonationService{err: donationdomain.ErrNotFound},
		&stubRaffleService{},
	)

	w := performRequest(s, http.MethodGet, "/api/donations/123", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	payload := decodeError(t, w)
	require.Equal(t, "not_found", payload.Type)
	require.Equal(t, "Doação não encontrada.", payload.Message)
}

func TestCreateDonationGatewayFailure(t *testing.T) {
	s := newTestServer(
		&stubCampaignService{},
		&stubDonationService{err: donationdomain.ErrPaymentCreateFailed},
		&stubRaffleService{},
	)

	body := `{"campaignId":"1","donorName":"Maria","donorEmail":"maria@example.com","donorPhone":"11987654321","donorCpf":"12345678900","amount":"30.00","numberOfTickets":3}`
	w := performRequest(s, http.MethodPost, "/api/donations", body)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	payload := decodeError(t, w)
	require.Equal(t, "gateway_error", payload.Type)
	require.Contains(t, payload.Message, "Erro ao criar pagamento PIX")
}

func TestListRaffleNumbersInvalidID(t *testing.T) {
	s := newTestServer(&stubCampaignService{}, &stubDonationService{}, &stubRaffleService{})

	w := performRequest(s, http.MethodGet, "/api/raffle-numbers/not-a-number", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	payload := decodeError(t, w)
	require.Equal(t, "validation_error", payload.Type)
}

func TestUpdateDonationStatusRespondsSuccess(t *testing.T) {
	s := newTestServer(&stubCampaignService{}, &stubDonationService{}, &stubRaffleService{})

	w := performRequest(s, http.MethodPatch, "/api/donations/1/status", `{"status":"approved","paymentId":"tx_1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, map[string]any{"success": true}, body)
}

func TestDonationResponseUsesCamelCaseFields(t *testing.T) {
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	s := newTestServer(
		&stubCampaignService{},
		&stubDonationService{donation: donationdomain.Donation{
			ID:              node.Generate(),
			CampaignID:      node.Generate(),
			DonorName:       "Maria",
			NumberOfTickets: 3,
			PaymentStatus:   donationdomain.StatusPending,
			PixCopyPaste:    "00020126pix",
		}},
		&stubRaffleService{},
	)

	w := performRequest(s, http.MethodGet, "/api/donations/1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "donorName")
	require.Contains(t, body, "numberOfTickets")
	require.Contains(t, body, "paymentStatus")
	require.Contains(t, body, "pixCopyPaste")
	require.Equal(t, "pending", body["paymentStatus"])
}
