package models

import (
	"time"

	"tps/src/types"
)

type Booking struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	BookingNumber string `gorm:"uniqueIndex" json:"booking_number,omitempty"`
	UserID        uint   `json:"user_id,omitempty"`
	PackageID     uint   `json:"package_id,omitempty"`
	DealID        *uint  `json:"deal_id,omitempty"`

	// Customer snapshot, copied at creation and never re-synced with users.
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	CheckInDate  time.Time `json:"check_in_date,omitempty"`
	CheckOutDate time.Time `json:"check_out_date,omitempty"`
	Guests       string    `json:"guests,omitempty"`

	BasePrice        float64 `json:"base_price"`
	Discount         float64 `gorm:"default:0" json:"discount"`
	TotalAmount      float64 `json:"total_amount"`
	AmountPaid       float64 `gorm:"default:0" json:"amount_paid"`
	RemainingBalance float64 `json:"remaining_balance"`

	Status        types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	PaymentStatus types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`
	BookingDate   time.Time           `json:"booking_date,omitempty"`

	Package  *Package   `gorm:"foreignKey:package_id" json:"package,omitempty"`
	Deal     *Deal      `gorm:"foreignKey:deal_id" json:"deal,omitempty"`
	User     *User      `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Payments []*Payment `gorm:"foreignKey:booking_id" json:"payments,omitempty"`

	types.Timestamps
}
