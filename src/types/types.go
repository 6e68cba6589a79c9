package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any
type JSONBArray []any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

func (a JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONBArray) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELLED BookingStatus = "cancelled"
	BOOKING_COMPLETED BookingStatus = "completed"
)

type PaymentStatus string

const (
	PAYMENT_PENDING PaymentStatus = "pending"
	PAYMENT_PARTIAL PaymentStatus = "partial"
	PAYMENT_PAID    PaymentStatus = "paid"
)

type TransactionStatus string

const (
	TRANSACTION_COMPLETED TransactionStatus = "completed"
	TRANSACTION_REFUNDED  TransactionStatus = "refunded"
)

// PaymentState is what DerivePaymentState returns. Every mutation path that
// touches money goes through it so remaining_balance and payment_status never
// drift apart.
type PaymentState struct {
	RemainingBalance float64
	PaymentStatus    PaymentStatus
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type PackageSlugURIParams struct {
	Slug string `uri:"slug" binding:"required"`
}

type CreateBookingRequestBody struct {
	PackageID    uint    `json:"package_id" binding:"required"`
	DealID       *uint   `json:"deal_id,omitempty"`
	FirstName    string  `json:"first_name" binding:"required"`
	LastName     string  `json:"last_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        string  `json:"phone,omitempty"`
	CheckInDate  string  `json:"check_in_date" binding:"required,traveldate" time_format:"2006-01-02 15:04:05 -07:00"`
	CheckOutDate string  `json:"check_out_date" binding:"required,traveldate,gtdate=CheckInDate" time_format:"2006-01-02 15:04:05 -07:00"`
	Adults       uint    `json:"adults,omitempty"`
	Children     uint    `json:"children,omitempty"`
	TotalAmount  float64 `json:"total_amount" binding:"required,gt=0"`
	AmountPaid   float64 `json:"amount_paid,omitempty" binding:"omitempty,gte=0"`
}

type UpdateBookingStatusRequestBody struct {
	Status BookingStatus `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequestBody struct {
	PaymentStatus PaymentStatus `json:"payment_status" binding:"required"`
	AmountPaid    *float64      `json:"amount_paid,omitempty" binding:"omitempty,gte=0"`
}

type ProcessPaymentRequestBody struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Method        string  `json:"method,omitempty"`
	TransactionID string  `json:"transaction_id" binding:"required"`
}

type CreatePackageRequestBody struct {
	Title       string     `json:"title" binding:"required"`
	Location    string     `json:"location" binding:"required"`
	Description *string    `json:"description,omitempty"`
	Images      JSONBArray `json:"images,omitempty"`
	Featured    bool       `json:"featured,omitempty"`

	Details []struct {
		Section string     `json:"section" binding:"required"`
		Items   JSONBArray `json:"items" binding:"required"`
	} `json:"details,omitempty"`
	Itinerary []struct {
		Day         uint   `json:"day" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description,omitempty"`
	} `json:"itinerary,omitempty"`
}

type CreateDealRequestBody struct {
	StartDate      string  `json:"start_date" binding:"required,traveldate" time_format:"2006-01-02 15:04:05 -07:00"`
	EndDate        string  `json:"end_date" binding:"required,traveldate,gtdate=StartDate" time_format:"2006-01-02 15:04:05 -07:00"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	SlotsAvailable uint    `json:"slots_available" binding:"required,gt=0"`
}

// SweepResult carries the per-booking outcome of an auto-cancel sweep,
// including the customer contact fields downstream notifiers need.
type SweepResult struct {
	BookingID     uint   `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	UserID        uint   `json:"user_id,omitempty"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Email         string `json:"email,omitempty"`
	Cancelled     bool   `json:"cancelled"`
	Error         string `json:"error,omitempty"`
}

type SweepReport struct {
	CancelledCount int           `json:"cancelled_count"`
	Results        []SweepResult `json:"results"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
