package models

import (
	"time"

	"tps/src/types"

	"github.com/google/uuid"
)

// Payment is an append-only ledger row. transaction_id is the gateway
// idempotency key: at most one row exists per distinct value.
type Payment struct {
	ID            uuid.UUID               `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	BookingID     uint                    `json:"booking_id,omitempty"`
	UserID        uint                    `json:"user_id,omitempty"`
	Amount        float64                 `json:"amount"`
	Method        string                  `json:"method,omitempty"`
	Status        types.TransactionStatus `gorm:"default:'completed'" json:"status,omitempty"`
	TransactionID string                  `gorm:"uniqueIndex" json:"transaction_id,omitempty"`
	ProcessedAt   time.Time               `json:"processed_at,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}
