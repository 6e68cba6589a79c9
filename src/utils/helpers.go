package utils

import (
	"fmt"
	"log"
	"os"
	"time"

	"tps/src/lib"
	"tps/src/lib/mailer"
	"tps/src/models"
	"tps/src/types"

	"github.com/golang-jwt/jwt/v4"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, id uint, role string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := &types.Claims{
		Username: email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// NotifyBookingCreated fans out the created event to the broker and sends the
// confirmation email. Called from a goroutine so failures only log.
func NotifyBookingCreated(booking *models.Booking) {
	err := lib.KafkaProduceMessage("BookingsCreatedProducer", lib.TopicBookingsCreated, map[string]any{
		"booking_id":     booking.ID,
		"booking_number": booking.BookingNumber,
		"user_id":        booking.UserID,
		"title":          "Booking received",
		"description":    fmt.Sprintf("Your booking %s is pending payment", booking.BookingNumber),
	})
	if err != nil {
		log.Printf("Error producing message for Booking[%d]: %s\n", booking.ID, err.Error())
	}
	if booking.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nWe have received your booking %s. Amount due: %.2f. Please settle the balance before your check-in date to keep your reservation.\n",
		booking.FirstName,
		booking.BookingNumber,
		booking.RemainingBalance,
	)
	err = mailer.NewMailerMessage(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Bookings",
		To:       []string{booking.Email},
		Subject:  fmt.Sprintf("Booking %s received", booking.BookingNumber),
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending email for Booking[%d]: %s\n", booking.ID, err.Error())
	}
}

func NotifyBookingCancelled(booking *models.Booking, reason string) {
	err := lib.KafkaProduceMessage("BookingsCancelledProducer", lib.TopicBookingsCancelled, map[string]any{
		"booking_id":     booking.ID,
		"booking_number": booking.BookingNumber,
		"user_id":        booking.UserID,
		"title":          "Booking cancelled",
		"description":    fmt.Sprintf("Your booking %s has been cancelled: %s", booking.BookingNumber, reason),
	})
	if err != nil {
		log.Printf("Error producing message for Booking[%d]: %s\n", booking.ID, err.Error())
	}
	if booking.Email == "" {
		return
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking %s has been cancelled. Reason: %s\n",
		booking.FirstName,
		booking.BookingNumber,
		reason,
	)
	err = mailer.NewMailerMessage(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Bookings",
		To:       []string{booking.Email},
		Subject:  fmt.Sprintf("Booking %s cancelled", booking.BookingNumber),
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending email for Booking[%d]: %s\n", booking.ID, err.Error())
	}
}

// NotifyPaymentReceived is invoked after a payment is applied, including
// replays that complete a booking.
func NotifyPaymentReceived(booking *models.Booking, amount float64) {
	if booking.Email == "" {
		return
	}
	var body string
	if booking.PaymentStatus == types.PAYMENT_PAID {
		body = fmt.Sprintf(
			"Hi %s,\n\nWe received your payment of %.2f for booking %s. Your booking is fully paid.\n",
			booking.FirstName, amount, booking.BookingNumber,
		)
	} else {
		body = fmt.Sprintf(
			"Hi %s,\n\nWe received your payment of %.2f for booking %s. Remaining balance: %.2f.\n",
			booking.FirstName, amount, booking.BookingNumber, booking.RemainingBalance,
		)
	}
	err := mailer.NewMailerMessage(&lib.SendMailInput{
		From:     os.Getenv("SMTP_FROM"),
		FromName: "Bookings",
		To:       []string{booking.Email},
		Subject:  fmt.Sprintf("Payment received for %s", booking.BookingNumber),
		Body:     body,
	})
	if err != nil {
		log.Printf("Error sending email for Booking[%d]: %s\n", booking.ID, err.Error())
	}
}
