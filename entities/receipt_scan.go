package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptScan tracks one uploaded receipt image through the external
// extraction service.
type ReceiptScan struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"image_url"`
	Status    string    `json:"status"` // "Pending", "Processed", "Failed"
	Results   string    `json:"results,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
