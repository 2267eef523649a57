package feed

import (
	"encoding/json"
	"time"

	"vendas/internal/core"
)

// SaleCreatedMessage carries a full sale record. Consumers fold the
// record straight into their in-memory state, so the payload is complete
// rather than an ID to fetch back.
type SaleCreatedMessage struct {
	Sale      core.Sale `json:"sale"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSaleCreatedMessage wraps a record for publishing.
func NewSaleCreatedMessage(sale core.Sale) *SaleCreatedMessage {
	return &SaleCreatedMessage{
		Sale:      sale,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SaleCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SaleCreatedMessageFromJSON creates a message from JSON bytes
func SaleCreatedMessageFromJSON(data []byte) (*SaleCreatedMessage, error) {
	var msg SaleCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
