// services/razorpay_service.go
package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// RazorpayService handles interactions with the Razorpay API
type RazorpayService struct {
	baseURL   string
	keyID     string
	keySecret string
	isTesting bool
}

// RazorpayOrder is the gateway's order object
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// RazorpayPayment is the subset of the payment object the verify flow needs
type RazorpayPayment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"` // "created", "authorized", "captured", "failed"
	Method   string `json:"method"`
}

// NewRazorpayService creates a new Razorpay service instance
func NewRazorpayService() *RazorpayService {
	isTesting := os.Getenv("RAZORPAY_ENV") == "testing"

	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")

	if keyID == "" || keySecret == "" {
		log.Printf("WARNING: Razorpay credentials not fully configured:")
		if keyID == "" {
			log.Printf("  - RAZORPAY_KEY_ID is missing")
		}
		if keySecret == "" {
			log.Printf("  - RAZORPAY_KEY_SECRET is missing")
		}
		log.Printf("Please set these environment variables for the Razorpay payment service to work")
	}

	return &RazorpayService{
		baseURL:   "https://api.razorpay.com/v1/",
		keyID:     keyID,
		keySecret: keySecret,
		isTesting: isTesting,
	}
}

// makeRequest performs an authenticated HTTP request to the Razorpay API
func (s *RazorpayService) makeRequest(method, endpoint string, payload interface{}, out interface{}) error {
	if s.keyID == "" || s.keySecret == "" {
		return fmt.Errorf("missing Razorpay credentials. Please set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET environment variables")
	}

	url := s.baseURL + endpoint

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(s.keyID, s.keySecret)
	req.Header.Set("Content-Type", "application/json")

	if s.isTesting || os.Getenv("RAZORPAY_DEBUG") == "true" {
		log.Printf("Razorpay API Request: %s %s", method, url)
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if s.isTesting || os.Getenv("RAZORPAY_DEBUG") == "true" {
		log.Printf("Razorpay API Response: %s", string(respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		if jsonErr := json.Unmarshal(respBody, &apiErr); jsonErr == nil && apiErr.Error.Description != "" {
			return fmt.Errorf("razorpay API error: %s - %s", apiErr.Error.Code, apiErr.Error.Description)
		}
		return fmt.Errorf("razorpay API error: status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// CreateOrder creates a gateway order for the given amount (in rupees)
func (s *RazorpayService) CreateOrder(amount float64, currency, receipt string) (*RazorpayOrder, error) {
	payload := map[string]interface{}{
		"amount":   int64(amount * 100), // Razorpay expects paise
		"currency": currency,
		"receipt":  receipt,
	}

	var order RazorpayOrder
	if err := s.makeRequest("POST", "orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetPaymentDetails fetches a payment so callers can check its status
func (s *RazorpayService) GetPaymentDetails(paymentID string) (*RazorpayPayment, error) {
	var payment RazorpayPayment
	if err := s.makeRequest("GET", "payments/"+paymentID, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// VerifyPaymentSignature checks the checkout callback's HMAC-SHA256 signature
// over "orderID|paymentID" against the key secret.
func (s *RazorpayService) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, s.keySecret)
}

// VerifySignature is the pure signature check, separated so it can be
// exercised without credentials in the environment.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
