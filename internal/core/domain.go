package core

import (
	"errors"
	"strings"
)

type (
	// Sale is one partner sale transaction as delivered by the backend.
	// Records are immutable once received; identity is ID. SaleDate keeps
	// the raw backend text because the backend stores dates in a text
	// column and its ordering is not trusted — every consumer derives
	// order from ParseSaleDate instead.
	Sale struct {
		ID            string `json:"id"`
		ValueCents    int64  `json:"value_cents"`
		SaleDate      string `json:"sale_date"`
		PaymentDetail string `json:"payment_detail"`
		PartnerID     int64  `json:"partner_id"`
		PartnerName   string `json:"partner_name"`
		ItemName      string `json:"item_name,omitempty"`
		State         string `json:"state,omitempty"`
	}

	// User is the authenticated dashboard user.
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyEmail    = errors.New("empty email")
)

func (s Sale) Validate() error {
	if s.ValueCents <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(s.SaleDate) == "" {
		return errors.New("empty sale date")
	}
	return nil
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}
