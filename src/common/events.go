package common

import (
	"log"

	"tps/src/db"
	"tps/src/lib"
	"tps/src/models"
	"tps/src/types"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// BookingEventsConsumer listens on the booking lifecycle topics and writes an
// in-app notification row per event.
func BookingEventsConsumer() {
	log.Println("[BookingEvents]: Listening for messages...")
	topics := []string{lib.TopicBookingsCreated, lib.TopicBookingsCancelled}
	lib.KafkaConsume("booking_events", topics, func(topic, body string) {
		if !gjson.Valid(body) {
			log.Printf("[BookingEvents]: Received invalid json body. Aborting")
			return
		}
		bookingId := gjson.Get(body, "booking_id").Uint()
		bookingNumber := gjson.Get(body, "booking_number").String()
		userId := gjson.Get(body, "user_id").Uint()
		title := gjson.Get(body, "title").String()
		description := gjson.Get(body, "description").String()
		if bookingId == 0 || title == "" {
			log.Printf("[BookingEvents]: Skipping malformed event on %s\n", topic)
			return
		}

		conn := db.GetDb()
		err := conn.Transaction(func(tx *gorm.DB) error {
			notification := models.Notification{
				UserID:         uint(userId),
				ReferenceType:  "Booking",
				ReferenceValue: bookingNumber,
				Title:          title,
				Description:    &description,
				ReferenceBody: &types.JSONB{
					"booking_id": bookingId,
					"topic":      topic,
				},
			}
			return tx.Create(&notification).Error
		})
		if err != nil {
			log.Printf("Error recording notification for booking %d: %s\n", bookingId, err.Error())
		}
	})
}
