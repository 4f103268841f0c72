package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/finops-engine/backend/internal/config"
	"github.com/finops-engine/backend/internal/model"
)

func shadowConfig() config.PaymentConfig {
	return config.PaymentConfig{Mode: "shadow", AccountID: "finops-paymaster", Network: "base-sepolia"}
}

func TestNewPaymentClientValidatesMode(t *testing.T) {
	if _, err := NewPaymentClient(config.PaymentConfig{Mode: "dry-run"}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if _, err := NewPaymentClient(config.PaymentConfig{Mode: "live"}); err == nil {
		t.Fatalf("expected error for live mode without base URL")
	}
	if _, err := NewPaymentClient(shadowConfig()); err != nil {
		t.Fatalf("unexpected error for shadow mode: %v", err)
	}
}

func TestTransferShadowMode(t *testing.T) {
	client, err := NewPaymentClient(shadowConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Transfer(context.Background(), 0.00005, "0xabc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if !strings.HasPrefix(result.TxID, "shadow-") {
		t.Fatalf("expected shadow tx id, got %q", result.TxID)
	}
}

func TestTransferRejectsInvalidInput(t *testing.T) {
	client, err := NewPaymentClient(shadowConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Transfer(context.Background(), 0.00005, "not-an-address")
	if err != nil {
		t.Fatalf("validation failure must not be a transport error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure for invalid recipient")
	}

	result, err = client.Transfer(context.Background(), 0, "0xabc123")
	if err != nil {
		t.Fatalf("validation failure must not be a transport error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure for zero amount")
	}
}

func TestTransferLiveMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/balance"):
			json.NewEncoder(w).Encode(map[string]any{"balance": 1.0, "currency": "ETH"})
		case r.URL.Path == "/v2/transfers":
			var req map[string]any
			json.NewDecoder(r.Body).Decode(&req)
			if req["recipient"] != "0xabc123" || req["asset"] != "ETH" {
				t.Errorf("unexpected transfer request: %v", req)
			}
			json.NewEncoder(w).Encode(map[string]any{"tx_hash": "0xdeadbeef", "status": "submitted"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := NewPaymentClient(config.PaymentConfig{
		Mode:      "live",
		BaseURL:   server.URL,
		AccountID: "finops-paymaster",
		Network:   "base-sepolia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Mode() != model.PaymentModeLive {
		t.Fatalf("expected live mode, got %s", client.Mode())
	}

	result, err := client.Transfer(context.Background(), 0.0001, "0xabc123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.TxID != "0xdeadbeef" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestTransferLiveModeInsufficientBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/balance") {
			json.NewEncoder(w).Encode(map[string]any{"balance": 0.0, "currency": "ETH"})
			return
		}
		t.Errorf("transfer must not be attempted with insufficient balance: %s", r.URL.Path)
	}))
	defer server.Close()

	client, err := NewPaymentClient(config.PaymentConfig{
		Mode:      "live",
		BaseURL:   server.URL,
		AccountID: "finops-paymaster",
		Network:   "base-sepolia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Transfer(context.Background(), 0.0001, "0xabc123")
	if err != nil {
		t.Fatalf("insufficient balance must not be a transport error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.Error, "faucet") {
		t.Fatalf("expected faucet hint in error, got %q", result.Error)
	}
}

func TestTransferLiveModeApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/balance") {
			json.NewEncoder(w).Encode(map[string]any{"balance": 1.0})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]any{"error": "upstream signer down"})
	}))
	defer server.Close()

	client, err := NewPaymentClient(config.PaymentConfig{
		Mode:      "live",
		BaseURL:   server.URL,
		AccountID: "finops-paymaster",
		Network:   "base-sepolia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := client.Transfer(context.Background(), 0.0001, "0xabc123")
	if err != nil {
		t.Fatalf("api rejection must not be a transport error: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure, got %+v", result)
	}
	if result.Error != "upstream signer down" {
		t.Fatalf("unexpected error message: %q", result.Error)
	}
}
