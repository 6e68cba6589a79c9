package common

import (
	"errors"
	"log"
	"time"

	"tps/src/db"
	"tps/src/models"
	"tps/src/types"

	"gorm.io/gorm"
)

// DerivePaymentState is the single derivation point for the money invariant:
// remaining_balance = max(0, total - paid), and payment_status is paid when
// nothing remains, partial when something was paid, pending otherwise.
func DerivePaymentState(totalAmount, amountPaid float64) types.PaymentState {
	remaining := totalAmount - amountPaid
	if remaining < 0 {
		remaining = 0
	}
	status := types.PAYMENT_PENDING
	if amountPaid > 0 {
		status = types.PAYMENT_PARTIAL
	}
	if totalAmount-amountPaid <= 0 {
		status = types.PAYMENT_PAID
	}
	return types.PaymentState{
		RemainingBalance: remaining,
		PaymentStatus:    status,
	}
}

// ProcessPayment applies a gateway payment to a booking at most once per
// transaction id. A replayed transaction id returns the original ledger row;
// a booking that is already settled returns a nil payment. Both report
// alreadyProcessed=true without writing anything. Booking update and ledger
// insert run in one store transaction.
func ProcessPayment(bookingId uint, body *types.ProcessPaymentRequestBody) (*models.Booking, *models.Payment, bool, error) {
	var booking models.Booking
	var payment models.Payment
	var replayed *models.Payment
	alreadyProcessed := false

	conn := db.GetDb()
	err := conn.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&models.Payment{}).
			Where(&models.Payment{TransactionID: body.TransactionID}).
			First(&payment).
			Error
		if err == nil {
			alreadyProcessed = true
			replayed = &payment
			return tx.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: payment.BookingID}).
				First(&booking).
				Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: bookingId}).
			First(&booking).
			Error; err != nil {
			return err
		}
		if booking.PaymentStatus == types.PAYMENT_PAID && booking.RemainingBalance <= 0 {
			alreadyProcessed = true
			return nil
		}

		newTotalPaid := booking.AmountPaid + body.Amount
		state := DerivePaymentState(booking.TotalAmount, newTotalPaid)
		if err := tx.
			Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Updates(map[string]any{
				"amount_paid":       newTotalPaid,
				"remaining_balance": state.RemainingBalance,
				"payment_status":    state.PaymentStatus,
				"updated_at":        time.Now(),
			}).
			Error; err != nil {
			return err
		}
		booking.AmountPaid = newTotalPaid
		booking.RemainingBalance = state.RemainingBalance
		booking.PaymentStatus = state.PaymentStatus

		method := body.Method
		if method == "" {
			method = "card"
		}
		payment = models.Payment{
			BookingID:     booking.ID,
			UserID:        booking.UserID,
			Amount:        body.Amount,
			Method:        method,
			Status:        types.TRANSACTION_COMPLETED,
			TransactionID: body.TransactionID,
			ProcessedAt:   time.Now(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		log.Printf("Error processing payment [%s] for booking %d: %s\n", body.TransactionID, bookingId, err.Error())
		return nil, nil, false, err
	}
	if alreadyProcessed {
		log.Printf("Payment [%s] already processed for booking %d\n", body.TransactionID, booking.ID)
		return &booking, replayed, true, nil
	}
	return &booking, &payment, false, nil
}
