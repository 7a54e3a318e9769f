package models

import "time"

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

type Client struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Country         string    `json:"country"`
	Subscription    string    `json:"subscription,omitempty"`
	Status          string    `json:"status"`
	ReceiptUploaded bool      `json:"receiptUploaded"`
	ReceiptName     string    `json:"receiptName,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ClientUpdateFields is the allow-list for partial client updates. Updates
// naming any other field are rejected outright, id and timestamps included.
var ClientUpdateFields = map[string]struct{}{
	"name":            {},
	"phone":           {},
	"country":         {},
	"subscription":    {},
	"status":          {},
	"receiptUploaded": {},
	"receiptName":     {},
}
