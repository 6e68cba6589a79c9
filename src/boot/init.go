package boot

import (
	"log"
	"time"

	"tps/src/common"
	"tps/src/db"
	"tps/src/lib"
	"tps/src/models"
	"tps/src/utils"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Package{},
		&models.PackageDetail{},
		&models.ItineraryItem{},
		&models.Deal{},
		&models.Booking{},
		&models.Payment{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker() {
	go lib.KafkaCreateTopics(lib.TopicBookingsCreated, lib.TopicBookingsCancelled, lib.TopicEmails)
	go common.BookingEventsConsumer()
}

// InitScheduler registers the recurring cancellation sweep and starts the
// scheduler. Bookings past the payment deadline are picked up on the next
// run after startup.
func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	j, err := lib.CreateCronJob(func() {
		report, err := common.AutoCancelExpiredBookings()
		if err != nil {
			log.Printf("Error running cancellation sweep: %s\n", err.Error())
			return
		}
		for _, r := range report.Results {
			if !r.Cancelled {
				continue
			}
			go utils.NotifyBookingCancelled(&models.Booking{
				ID:            r.BookingID,
				BookingNumber: r.BookingNumber,
				UserID:        r.UserID,
				FirstName:     r.FirstName,
				LastName:      r.LastName,
				Email:         r.Email,
			}, "payment was not completed before the deadline")
		}
		log.Printf("Cancellation sweep done: cancelled=%d checked=%d\n", report.CancelledCount, len(report.Results))
	}, 1*time.Hour)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	log.Printf("Job ID: %s\n", *j)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
