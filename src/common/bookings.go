package common

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"tps/src/config"
	"tps/src/db"
	"tps/src/models"
	"tps/src/types"

	"gorm.io/gorm"
)

// ParseBookingNumber extracts the numeric suffix from a booking number like
// "BK-042". The second return is false when the value does not follow the
// sequential format (e.g. a timestamp fallback number).
func ParseBookingNumber(number string) (int, bool) {
	if !strings.HasPrefix(number, config.BOOKING_NUMBER_PREFIX) {
		return 0, false
	}
	suffix := strings.TrimPrefix(number, config.BOOKING_NUMBER_PREFIX)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

func FormatBookingNumber(n int) string {
	return fmt.Sprintf("%s%03d", config.BOOKING_NUMBER_PREFIX, n)
}

// NextBookingNumber reads the most recently created booking and increments its
// suffix. A read failure falls back to a timestamp-derived number so booking
// creation stays live; uniqueness is not guaranteed on that path.
func NextBookingNumber(tx *gorm.DB) string {
	var last models.Booking
	err := tx.
		Model(&models.Booking{}).
		Select("booking_number").
		Order("id desc").
		First(&last).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FormatBookingNumber(1)
		}
		log.Printf("Error reading last booking number, using fallback: %s\n", err.Error())
		return fmt.Sprintf("%s%d", config.BOOKING_NUMBER_PREFIX, time.Now().UnixNano())
	}
	n, ok := ParseBookingNumber(last.BookingNumber)
	if !ok {
		log.Printf("Unparseable booking number %q, using fallback\n", last.BookingNumber)
		return fmt.Sprintf("%s%d", config.BOOKING_NUMBER_PREFIX, time.Now().UnixNano())
	}
	return FormatBookingNumber(n + 1)
}

// FormatGuests renders the human-readable guest description. A booking with
// no counts at all defaults to a single adult.
func FormatGuests(adults, children uint) string {
	if adults == 0 && children == 0 {
		adults = 1
	}
	parts := []string{}
	if adults == 1 {
		parts = append(parts, "1 Adult")
	} else if adults > 1 {
		parts = append(parts, fmt.Sprintf("%d Adults", adults))
	}
	if children == 1 {
		parts = append(parts, "1 Child")
	} else if children > 1 {
		parts = append(parts, fmt.Sprintf("%d Children", children))
	}
	return strings.Join(parts, ", ")
}

// IsAllowedTransition is consulted before every status write. Every transition
// between known statuses is currently permitted; restricting the table is a
// policy edit here, not a rewrite of the callers.
func IsAllowedTransition(from, to types.BookingStatus) bool {
	known := func(s types.BookingStatus) bool {
		switch s {
		case types.BOOKING_PENDING, types.BOOKING_CONFIRMED, types.BOOKING_CANCELLED, types.BOOKING_COMPLETED:
			return true
		}
		return false
	}
	return known(from) && known(to)
}

// AdjustDealSlots moves a deal's slots_booked by delta as a single conditional
// UPDATE so concurrent confirmations cannot lose increments. Decrements are
// floored at zero. No capacity ceiling is enforced at confirmation time.
func AdjustDealSlots(tx *gorm.DB, dealID uint, delta int) error {
	switch {
	case delta > 0:
		return tx.
			Model(&models.Deal{}).
			Where("id = ?", dealID).
			UpdateColumn("slots_booked", gorm.Expr("slots_booked + ?", delta)).
			Error
	case delta < 0:
		return tx.
			Model(&models.Deal{}).
			Where("id = ? AND slots_booked > 0", dealID).
			UpdateColumn("slots_booked", gorm.Expr("slots_booked - ?", -delta)).
			Error
	}
	return nil
}

// CreateBooking persists a new pending booking with its generated booking
// number and derived payment fields. Deal slots are untouched here: inventory
// is only consumed when a booking is confirmed, even if it was fully paid up
// front.
func CreateBooking(userId uint, body *types.CreateBookingRequestBody) (*models.Booking, error) {
	checkIn, err := time.Parse(config.TIME_PARSE_FORMAT, body.CheckInDate)
	if err != nil {
		return nil, err
	}
	checkOut, err := time.Parse(config.TIME_PARSE_FORMAT, body.CheckOutDate)
	if err != nil {
		return nil, err
	}

	var booking models.Booking
	conn := db.GetDb()
	err = conn.Transaction(func(tx *gorm.DB) error {
		state := DerivePaymentState(body.TotalAmount, body.AmountPaid)
		now := time.Now()
		booking = models.Booking{
			BookingNumber:    NextBookingNumber(tx),
			UserID:           userId,
			PackageID:        body.PackageID,
			DealID:           body.DealID,
			FirstName:        body.FirstName,
			LastName:         body.LastName,
			Email:            body.Email,
			Phone:            body.Phone,
			CheckInDate:      checkIn,
			CheckOutDate:     checkOut,
			Guests:           FormatGuests(body.Adults, body.Children),
			BasePrice:        body.TotalAmount,
			Discount:         0,
			TotalAmount:      body.TotalAmount,
			AmountPaid:       body.AmountPaid,
			RemainingBalance: state.RemainingBalance,
			Status:           types.BOOKING_PENDING,
			PaymentStatus:    state.PaymentStatus,
			BookingDate:      now,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating booking for user %d: %s\n", userId, err.Error())
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus overwrites a booking's status and applies the slot side
// effect on its linked deal: +1 entering confirmed, -1 leaving it. The whole
// sequence runs in one store transaction, so a failed slot adjustment rolls
// the status change back instead of leaving the two diverged.
func UpdateBookingStatus(id uint, newStatus types.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id}).
			First(&booking).
			Error; err != nil {
			return err
		}
		oldStatus := booking.Status
		if !IsAllowedTransition(oldStatus, newStatus) {
			return fmt.Errorf("transition from %q to %q is not allowed", oldStatus, newStatus)
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"status":     newStatus,
				"updated_at": time.Now(),
			}).
			Error; err != nil {
			return err
		}
		if booking.DealID != nil {
			if oldStatus != types.BOOKING_CONFIRMED && newStatus == types.BOOKING_CONFIRMED {
				if err := AdjustDealSlots(tx, *booking.DealID, 1); err != nil {
					log.Printf("Error incrementing slots for deal %d: %s\n", *booking.DealID, err.Error())
					return err
				}
			}
			if oldStatus == types.BOOKING_CONFIRMED && newStatus != types.BOOKING_CONFIRMED {
				if err := AdjustDealSlots(tx, *booking.DealID, -1); err != nil {
					log.Printf("Error releasing slot for deal %d: %s\n", *booking.DealID, err.Error())
					return err
				}
			}
		}
		booking.Status = newStatus
		return nil
	})
	if err != nil {
		log.Printf("Error updating status for booking %d: %s\n", id, err.Error())
		return nil, err
	}
	return &booking, nil
}

// UpdatePaymentStatus is the administrative label-set variant: it rewrites
// payment_status directly and, when an amount is supplied, recomputes the
// balance against the booking's existing total. No ledger row is written and
// no slots move.
func UpdatePaymentStatus(id uint, paymentStatus types.PaymentStatus, amountPaid *float64) (*models.Booking, error) {
	var booking models.Booking
	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: id}).
			First(&booking).
			Error; err != nil {
			return err
		}
		updates := map[string]any{
			"payment_status": paymentStatus,
			"updated_at":     time.Now(),
		}
		if amountPaid != nil {
			state := DerivePaymentState(booking.TotalAmount, *amountPaid)
			updates["amount_paid"] = *amountPaid
			updates["remaining_balance"] = state.RemainingBalance
			booking.AmountPaid = *amountPaid
			booking.RemainingBalance = state.RemainingBalance
		}
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", id).
			Updates(updates).
			Error; err != nil {
			return err
		}
		booking.PaymentStatus = paymentStatus
		return nil
	})
	if err != nil {
		log.Printf("Error updating payment status for booking %d: %s\n", id, err.Error())
		return nil, err
	}
	return &booking, nil
}

func GetBookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	conn := db.GetDb()
	err := conn.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: id}).
		Preload("Package", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "slug", "location")
		}).
		Preload("Deal").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone")
		}).
		Preload("Payments").
		First(&booking).
		Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func GetUserBookings(userId uint) ([]models.Booking, error) {
	var bookings []models.Booking
	conn := db.GetDb()
	err := conn.
		Model(&models.Booking{}).
		Where(&models.Booking{UserID: userId}).
		Preload("Package", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "slug", "location")
		}).
		Order("created_at desc").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func GetAllBookings() ([]models.Booking, error) {
	var bookings []models.Booking
	conn := db.GetDb()
	err := conn.
		Model(&models.Booking{}).
		Preload("Package", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "slug", "location")
		}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone")
		}).
		Order("created_at desc").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
