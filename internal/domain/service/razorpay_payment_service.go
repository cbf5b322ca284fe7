package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bizbid/pkg/errors"
	"bizbid/pkg/logger"
)

// RazorpayPaymentService talks to a Razorpay-compatible order API over HTTP.
type RazorpayPaymentService struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewRazorpayPaymentService(keyID, keySecret string) *RazorpayPaymentService {
	return &RazorpayPaymentService{
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    "https://api.razorpay.com/v1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type orderRequest struct {
	Amount   int64             `json:"amount"` // minor units
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

func (s *RazorpayPaymentService) CreateOrder(ctx context.Context, orderRef string, amount float64, notes map[string]string) (*GatewayOrder, error) {
	logger.Info("Creating payment order", logger.Fields{"orderRef": orderRef, "amount": amount})

	body, err := json.Marshal(orderRequest{
		Amount:   int64(amount * 100),
		Currency: "INR",
		Receipt:  orderRef,
		Notes:    notes,
	})
	if err != nil {
		return nil, errors.Internal("Failed to marshal order request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, errors.Internal("Failed to build order request", err)
	}

	authHeader := base64.StdEncoding.EncodeToString([]byte(s.keyID + ":" + s.keySecret))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+authHeader)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Upstream("Payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Upstream("Failed to read gateway response", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		logger.Error("Payment gateway rejected order", logger.Fields{"orderRef": orderRef, "status": resp.StatusCode})
		return nil, errors.Upstream(fmt.Sprintf("Payment gateway error (%d)", resp.StatusCode), nil)
	}

	var order orderResponse
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, errors.Upstream("Failed to parse gateway response", err)
	}

	return &GatewayOrder{
		OrderRef: order.ID,
		Amount:   float64(order.Amount) / 100,
		Currency: order.Currency,
		Status:   order.Status,
	}, nil
}

// VerifySignature checks HMAC-SHA256(orderRef|paymentRef, keySecret) in
// constant time.
func (s *RazorpayPaymentService) VerifySignature(orderRef, paymentRef, signature string) error {
	if orderRef == "" || paymentRef == "" || signature == "" {
		return errors.Upstream("Missing fields for signature verification", nil)
	}

	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderRef + "|" + paymentRef))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return errors.Upstream("Payment signature verification failed", nil)
	}
	return nil
}
