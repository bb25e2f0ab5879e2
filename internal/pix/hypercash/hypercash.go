package hypercash

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rifasolidaria/rifa/internal/pix/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var decimalHundred = decimal.NewFromInt(100)

const (
	itemTitle       = "Doação para Dudu - Rifa Solidária"
	currencyBRL     = "BRL"
	pixExpiresDays  = 1
	requestTimeout  = 15 * time.Second
	maxErrorBodyLen = 2048
)

type Config struct {
	BaseURL string
	APIKey  string
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func New(cfg Config, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log.Named("pix.hypercash"),
	}
}

type createTransactionRequest struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	PaymentMethod string            `json:"paymentMethod"`
	Customer      transactionCust   `json:"customer"`
	Items         []transactionItem `json:"items"`
	Pix           transactionPix    `json:"pix"`
	Metadata      string            `json:"metadata,omitempty"`
}

type transactionCust struct {
	Name     string              `json:"name"`
	Email    string              `json:"email"`
	Phone    string              `json:"phone,omitempty"`
	Document transactionDocument `json:"document"`
}

type transactionDocument struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type transactionItem struct {
	Title     string `json:"title"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Tangible  bool   `json:"tangible"`
}

type transactionPix struct {
	ExpiresInDays int `json:"expiresInDays"`
}

type transactionResponse struct {
	Data struct {
		ID     string `json:"id"`
		Amount int64  `json:"amount"`
		Status string `json:"status"`
		Pix    struct {
			QRCode         *string `json:"qrcode"`
			URL            *string `json:"url"`
			ExpirationDate *string `json:"expirationDate"`
		} `json:"pix"`
	} `json:"data"`
}

func (c *Client) CreateCharge(ctx context.Context, req domain.CreateChargeRequest) (domain.Charge, error) {
	if c.apiKey == "" {
		return domain.Charge{}, domain.ErrNotConfigured
	}
	if req.DonationID == "" || !req.Amount.IsPositive() {
		return domain.Charge{}, domain.ErrInvalidRequest
	}

	cents := req.Amount.Mul(decimalHundred).Round(0).IntPart()
	metadata, _ := json.Marshal(map[string]string{"donationId": req.DonationID})

	payload := createTransactionRequest{
		Amount:        cents,
		Currency:      currencyBRL,
		PaymentMethod: "PIX",
		Customer: transactionCust{
			Name:  req.DonorName,
			Email: req.DonorEmail,
			Phone: onlyDigits(req.DonorPhone),
			Document: transactionDocument{
				Type:   "CPF",
				Number: onlyDigits(req.DonorCPF),
			},
		},
		Items: []transactionItem{
			{
				Title:     itemTitle,
				UnitPrice: cents,
				Quantity:  1,
				Tangible:  false,
			},
		},
		Pix:      transactionPix{ExpiresInDays: pixExpiresDays},
		Metadata: string(metadata),
	}

	var out transactionResponse
	if err := c.do(ctx, http.MethodPost, "/transactions", payload, &out); err != nil {
		return domain.Charge{}, err
	}

	charge := domain.Charge{
		ProviderChargeID: out.Data.ID,
		RawStatus:        out.Data.Status,
	}
	if out.Data.Pix.QRCode != nil {
		charge.PayableCode = *out.Data.Pix.QRCode
	}
	if out.Data.Pix.URL != nil {
		charge.PaymentURL = *out.Data.Pix.URL
	}
	// A charge without a payable code or a payment link cannot be paid;
	// treat it as a provider failure rather than persisting a dead charge.
	if charge.PayableCode == "" && charge.PaymentURL == "" {
		return domain.Charge{}, fmt.Errorf("%w: transaction %s has no payment material", domain.ErrProvider, out.Data.ID)
	}
	if out.Data.Pix.ExpirationDate != nil {
		if ts, err := time.Parse(time.RFC3339, *out.Data.Pix.ExpirationDate); err == nil {
			utc := ts.UTC()
			charge.ExpiresAt = &utc
		}
	}
	charge.QRImage = RenderQRImage(charge.PayableCode, c.log)
	return charge, nil
}

func (c *Client) CheckStatus(ctx context.Context, chargeID string) (domain.ChargeStatus, error) {
	if c.apiKey == "" {
		return domain.ChargeStatus{}, domain.ErrNotConfigured
	}
	if strings.TrimSpace(chargeID) == "" {
		return domain.ChargeStatus{}, domain.ErrInvalidRequest
	}

	var out transactionResponse
	if err := c.do(ctx, http.MethodGet, "/transactions/"+chargeID, nil, &out); err != nil {
		return domain.ChargeStatus{}, err
	}

	status := out.Data.Status
	return domain.ChargeStatus{
		Status: status,
		Paid:   status == "PAID" || status == "paid",
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.authHeader())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		c.log.Warn("gateway request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: status %d: %s", domain.ErrProvider, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", domain.ErrProvider, err)
	}
	return nil
}

func (c *Client) authHeader() string {
	credentials := "x:" + c.apiKey
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

func onlyDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
