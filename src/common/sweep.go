package common

import (
	"log"
	"time"

	"tps/src/config"
	"tps/src/db"
	"tps/src/models"
	"tps/src/types"

	"gorm.io/gorm"
)

// paymentDeadline is the cutoff used by the auto-cancel sweep: bookings
// checking in on or before this date must already be fully paid.
func paymentDeadline(now time.Time) time.Time {
	return now.AddDate(0, 0, config.PAYMENT_DEADLINE_DAYS)
}

// PastPaymentDeadline reports whether a booking with the given check-in date
// has crossed the payment deadline as of now: the deadline sits 45 days before
// travel, so anything checking in within that window is past due.
func PastPaymentDeadline(checkIn, now time.Time) bool {
	return !checkIn.After(paymentDeadline(now))
}

// AutoCancelExpiredBookings cancels every pending or confirmed booking that
// still owes money and whose check-in date is within the payment deadline.
// Each candidate is processed independently; one failure is recorded in its
// result entry and the sweep moves on.
func AutoCancelExpiredBookings() (*types.SweepReport, error) {
	deadline := paymentDeadline(time.Now())

	var candidates []models.Booking
	conn := db.GetDb()
	err := conn.
		Model(&models.Booking{}).
		Where("status IN ?", []types.BookingStatus{types.BOOKING_PENDING, types.BOOKING_CONFIRMED}).
		Where("remaining_balance > 0").
		Where("check_in_date <= ?", deadline).
		Find(&candidates).
		Error
	if err != nil {
		log.Printf("Error fetching auto-cancel candidates: %s\n", err.Error())
		return nil, err
	}

	report := &types.SweepReport{Results: []types.SweepResult{}}
	for _, booking := range candidates {
		result := types.SweepResult{
			BookingID:     booking.ID,
			BookingNumber: booking.BookingNumber,
			UserID:        booking.UserID,
			FirstName:     booking.FirstName,
			LastName:      booking.LastName,
			Email:         booking.Email,
		}
		err := conn.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Updates(map[string]any{
					"status":     types.BOOKING_CANCELLED,
					"updated_at": time.Now(),
				}).
				Error; err != nil {
				return err
			}
			if booking.Status == types.BOOKING_CONFIRMED && booking.DealID != nil {
				if err := AdjustDealSlots(tx, *booking.DealID, -1); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("Error auto-cancelling booking %s: %s\n", booking.BookingNumber, err.Error())
			result.Error = err.Error()
		} else {
			result.Cancelled = true
			report.CancelledCount++
		}
		report.Results = append(report.Results, result)
	}
	log.Printf("Auto-cancel sweep: %d of %d candidates cancelled\n", report.CancelledCount, len(candidates))
	return report, nil
}
