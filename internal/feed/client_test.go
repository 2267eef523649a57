package feed

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"vendas/internal/core"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"connection closed", errors.New("connection closed"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"channel closed", errors.New("message channel closed"), true},
		{"handler failure", errors.New("handler: bad record"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestSaleCreatedMessageRoundTrip(t *testing.T) {
	msg := NewSaleCreatedMessage(core.Sale{
		ID:          "s1",
		ValueCents:  1299,
		SaleDate:    "2025-01-15 14:30:00",
		PartnerName: "Águia Ar",
		ItemName:    "Split Gree 9000 BTUs",
	})

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := SaleCreatedMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Sale != msg.Sale {
		t.Fatalf("got %+v, want %+v", got.Sale, msg.Sale)
	}

	if _, err := SaleCreatedMessageFromJSON([]byte("{nope")); err == nil {
		t.Fatal("expected unmarshal error")
	}
}
